package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTemplate = errors.New("invalid email template")
	ErrInvalidFeature  = errors.New("invalid automation feature")
)

type TemplateType string

const (
	TemplateApplicationReceived TemplateType = "applicationReceived"
	TemplateInterviewInvitation TemplateType = "interviewInvitation"
	TemplateAssessmentReminder  TemplateType = "assessmentReminder"
	TemplateStatusUpdate        TemplateType = "statusUpdate"
)

func ParseTemplateType(raw string) (TemplateType, error) {
	switch t := TemplateType(raw); t {
	case TemplateApplicationReceived, TemplateInterviewInvitation, TemplateAssessmentReminder, TemplateStatusUpdate:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTemplate, raw)
}

type EmailTemplates struct {
	ApplicationReceived bool `json:"applicationReceived" yaml:"application_received"`
	InterviewInvitation bool `json:"interviewInvitation" yaml:"interview_invitation"`
	AssessmentReminder  bool `json:"assessmentReminder" yaml:"assessment_reminder"`
	StatusUpdate        bool `json:"statusUpdate" yaml:"status_update"`
}

func (t EmailTemplates) Enabled(tt TemplateType) bool {
	switch tt {
	case TemplateApplicationReceived:
		return t.ApplicationReceived
	case TemplateInterviewInvitation:
		return t.InterviewInvitation
	case TemplateAssessmentReminder:
		return t.AssessmentReminder
	case TemplateStatusUpdate:
		return t.StatusUpdate
	}
	return false
}

type EmailSettings struct {
	Enabled   bool           `json:"enabled" yaml:"enabled"`
	Templates EmailTemplates `json:"templates" yaml:"templates"`
}

type NotificationTypes struct {
	AssessmentCompleted bool `json:"assessmentCompleted" yaml:"assessment_completed"`
	StatusChanged       bool `json:"statusChanged" yaml:"status_changed"`
	NewApplication      bool `json:"newApplication" yaml:"new_application"`
}

type NotificationSettings struct {
	Enabled bool              `json:"enabled" yaml:"enabled"`
	Types   NotificationTypes `json:"types" yaml:"types"`
}

type AvailabilityWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

type SchedulingSettings struct {
	Enabled            bool               `json:"enabled" yaml:"enabled"`
	AutoSchedule       bool               `json:"autoSchedule" yaml:"auto_schedule"`
	ReminderHours      int                `json:"reminderHours" yaml:"reminder_hours"`
	AvailabilityWindow AvailabilityWindow `json:"availabilityWindow" yaml:"availability_window"`
}

type AutomationSettings struct {
	Emails        EmailSettings        `json:"emails" yaml:"emails"`
	Notifications NotificationSettings `json:"notifications" yaml:"notifications"`
	Scheduling    SchedulingSettings   `json:"scheduling" yaml:"scheduling"`
}

// Automation features addressable through the settings update path.
const (
	FeatureEmails        = "emails"
	FeatureNotifications = "notifications"
	FeatureScheduling    = "scheduling"
)

func DefaultAutomationSettings() AutomationSettings {
	return AutomationSettings{
		Emails: EmailSettings{
			Enabled: true,
			Templates: EmailTemplates{
				ApplicationReceived: true,
				InterviewInvitation: true,
				AssessmentReminder:  true,
				StatusUpdate:        true,
			},
		},
		Notifications: NotificationSettings{
			Enabled: false,
			Types: NotificationTypes{
				AssessmentCompleted: true,
				StatusChanged:       true,
				NewApplication:      true,
			},
		},
		Scheduling: SchedulingSettings{
			Enabled:       true,
			AutoSchedule:  true,
			ReminderHours: 24,
			AvailabilityWindow: AvailabilityWindow{
				Start: "09:00",
				End:   "17:00",
			},
		},
	}
}

// EmailAllowed reports whether a template may be sent under these settings.
func (s AutomationSettings) EmailAllowed(tt TemplateType) bool {
	return s.Emails.Enabled && s.Emails.Templates.Enabled(tt)
}

func (s AutomationSettings) Validate() error {
	if s.Scheduling.ReminderHours < 0 {
		return errors.New("scheduling.reminderHours must not be negative")
	}
	w := s.Scheduling.AvailabilityWindow
	start, err := time.Parse("15:04", w.Start)
	if err != nil {
		return fmt.Errorf("scheduling.availabilityWindow.start: %w", err)
	}
	end, err := time.Parse("15:04", w.End)
	if err != nil {
		return fmt.Errorf("scheduling.availabilityWindow.end: %w", err)
	}
	if !end.After(start) {
		return errors.New("scheduling.availabilityWindow must end after it starts")
	}
	return nil
}

// AutomationEvent is one entry of the per-candidate automation ledger.
type AutomationEvent struct {
	CandidateID   string       `json:"candidateId"`
	Template      TemplateType `json:"template,omitempty"`
	InterviewDate *time.Time   `json:"interviewDate,omitempty"`
	InterviewType string       `json:"interviewType,omitempty"`
	At            time.Time    `json:"at"`
}
