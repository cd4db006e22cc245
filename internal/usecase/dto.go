package usecase

import (
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

type CandidateDetailsInput struct {
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Position   string   `json:"position"`
	Experience int      `json:"experience"`
	Skills     []string `json:"skills"`
}

func (d *CandidateDetailsInput) toEntity() *entity.Details {
	if d == nil {
		return nil
	}
	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		if s = trimmed(s); s != "" {
			skills = append(skills, s)
		}
	}
	return &entity.Details{
		Email:      trimmed(d.Email),
		Phone:      trimmed(d.Phone),
		Position:   trimmed(d.Position),
		Experience: d.Experience,
		Skills:     skills,
	}
}

// CreateCandidateInput keeps enums as raw text so bad values surface as validation errors.
type CreateCandidateInput struct {
	Name             string                 `json:"name"`
	Stage            string                 `json:"stage"`
	ApplicationDate  *time.Time             `json:"applicationDate"`
	OverallScore     int                    `json:"overallScore"`
	IsReferral       bool                   `json:"isReferral"`
	AssessmentStatus string                 `json:"assessmentStatus"`
	Details          *CandidateDetailsInput `json:"details"`
}

// UpdateCandidateInput is a partial update; nil fields are left unchanged.
type UpdateCandidateInput struct {
	ID               string                 `json:"-"`
	Name             *string                `json:"name"`
	Stage            *string                `json:"stage"`
	ApplicationDate  *time.Time             `json:"applicationDate"`
	OverallScore     *int                   `json:"overallScore"`
	IsReferral       *bool                  `json:"isReferral"`
	AssessmentStatus *string                `json:"assessmentStatus"`
	Details          *CandidateDetailsInput `json:"details"`
}

type ChangeStageInput struct {
	ID    string `json:"-"`
	Stage string `json:"stage"`
}

type QueueEmailInput struct {
	CandidateID  string `json:"candidateId"`
	TemplateType string `json:"templateType"`
}

type QueueEmailOutput struct {
	Message      string `json:"message"`
	CandidateID  string `json:"candidateId"`
	TemplateType string `json:"templateType"`
}

type ScheduleInterviewInput struct {
	CandidateID   string     `json:"candidateId"`
	InterviewDate *time.Time `json:"interviewDate"`
	InterviewType string     `json:"interviewType"`
}

type ScheduleInterviewOutput struct {
	Message       string    `json:"message"`
	CandidateID   string    `json:"candidateId"`
	InterviewDate time.Time `json:"interviewDate"`
	InterviewType string    `json:"interviewType"`
}

type UpcomingInterview struct {
	Date time.Time `json:"date"`
	Type string    `json:"type"`
}

type AutomationStatus struct {
	EmailsSent         []entity.TemplateType `json:"emailsSent"`
	UpcomingInterviews []UpcomingInterview   `json:"upcomingInterviews"`
	PendingActions     []string              `json:"pendingActions"`
}

type AutomationStatusOutput struct {
	CandidateID      string           `json:"candidateId"`
	AutomationStatus AutomationStatus `json:"automationStatus"`
}
