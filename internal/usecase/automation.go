package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

// Pending actions reported by automation status.
const (
	ActionSendAssessment    = "sendAssessment"
	ActionScheduleInterview = "scheduleInterview"
	ActionScheduleFollowup  = "scheduleFollowup"
)

// SettingsStore holds the live automation settings. Update is the only writer.
type SettingsStore struct {
	mu       sync.RWMutex
	settings entity.AutomationSettings
}

func NewSettingsStore(initial entity.AutomationSettings) *SettingsStore {
	return &SettingsStore{settings: initial}
}

func (s *SettingsStore) Current() entity.AutomationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update merges raw (a JSON object) over one feature block. Fields absent from
// raw keep their values; unknown fields are rejected.
func (s *SettingsStore) Update(feature string, raw json.RawMessage) (entity.AutomationSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	var target any
	switch feature {
	case entity.FeatureEmails:
		target = &next.Emails
	case entity.FeatureNotifications:
		target = &next.Notifications
	case entity.FeatureScheduling:
		target = &next.Scheduling
	default:
		return s.settings, &DomainError{
			Code:    CodeInvalidFeature,
			Message: fmt.Sprintf("%v: %q", entity.ErrInvalidFeature, feature),
		}
	}

	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return s.settings, invalid([]ValidationError{{"settings", "is required"}})
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return s.settings, invalid([]ValidationError{{"settings", err.Error()}})
	}
	if err := next.Validate(); err != nil {
		return s.settings, invalid([]ValidationError{{"settings", err.Error()}})
	}

	s.settings = next
	return next, nil
}

type AutomationUseCase struct {
	Repo     entity.CandidateRepository
	Queue    NotificationPublisher
	Settings *SettingsStore
	Ledger   AutomationLedger
	Now      func() time.Time
}

func NewAutomationUseCase(
	repo entity.CandidateRepository,
	queue NotificationPublisher,
	settings *SettingsStore,
	ledger AutomationLedger,
) *AutomationUseCase {
	return &AutomationUseCase{
		Repo:     repo,
		Queue:    queue,
		Settings: settings,
		Ledger:   ledger,
		Now:      time.Now,
	}
}

func (uc *AutomationUseCase) QueueEmail(ctx context.Context, input QueueEmailInput) (*QueueEmailOutput, error) {
	var errs []ValidationError
	if trimmed(input.CandidateID) == "" {
		errs = append(errs, ValidationError{"candidateId", "is required"})
	}
	if trimmed(input.TemplateType) == "" {
		errs = append(errs, ValidationError{"templateType", "is required"})
	}
	if len(errs) > 0 {
		return nil, invalid(errs)
	}

	tt, err := entity.ParseTemplateType(input.TemplateType)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidTemplate, Message: err.Error()}
	}
	if !uc.Settings.Current().EmailAllowed(tt) {
		return nil, &DomainError{Code: CodeAutomationDisabled, Message: fmt.Sprintf("email template %s is disabled", tt)}
	}

	candidate, err := uc.load(ctx, input.CandidateID)
	if err != nil {
		return nil, err
	}
	if err := publish(ctx, uc.Queue, notificationFor(candidate, tt, uc.Now())); err != nil {
		return nil, err
	}

	return &QueueEmailOutput{
		Message:      "Email queued successfully",
		CandidateID:  candidate.ID,
		TemplateType: string(tt),
	}, nil
}

// ScheduleInterview books the interview in the ledger and, when enabled, queues the invitation.
func (uc *AutomationUseCase) ScheduleInterview(ctx context.Context, input ScheduleInterviewInput) (*ScheduleInterviewOutput, error) {
	var errs []ValidationError
	if trimmed(input.CandidateID) == "" {
		errs = append(errs, ValidationError{"candidateId", "is required"})
	}
	if input.InterviewDate == nil || input.InterviewDate.IsZero() {
		errs = append(errs, ValidationError{"interviewDate", "is required"})
	}
	if trimmed(input.InterviewType) == "" {
		errs = append(errs, ValidationError{"interviewType", "is required"})
	}
	if len(errs) > 0 {
		return nil, invalid(errs)
	}

	settings := uc.Settings.Current()
	if !settings.Scheduling.Enabled {
		return nil, &DomainError{Code: CodeAutomationDisabled, Message: "interview scheduling is disabled"}
	}

	candidate, err := uc.load(ctx, input.CandidateID)
	if err != nil {
		return nil, err
	}

	now := uc.Now()
	date := input.InterviewDate.UTC()
	kind := trimmed(input.InterviewType)

	uc.Ledger.Record(entity.AutomationEvent{
		CandidateID:   candidate.ID,
		InterviewDate: &date,
		InterviewType: kind,
		At:            now,
	})

	if settings.EmailAllowed(entity.TemplateInterviewInvitation) {
		p := notificationFor(candidate, entity.TemplateInterviewInvitation, now)
		p.InterviewDate = &date
		p.InterviewType = kind
		if err := publish(ctx, uc.Queue, p); err != nil {
			return nil, err
		}
	}

	return &ScheduleInterviewOutput{
		Message:       "Interview scheduled successfully",
		CandidateID:   candidate.ID,
		InterviewDate: date,
		InterviewType: kind,
	}, nil
}

func (uc *AutomationUseCase) Status(ctx context.Context, candidateID string) (*AutomationStatusOutput, error) {
	candidate, err := uc.load(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return &AutomationStatusOutput{
		CandidateID:      candidate.ID,
		AutomationStatus: buildStatus(candidate, uc.Ledger.Events(candidate.ID), uc.Now()),
	}, nil
}

func (uc *AutomationUseCase) load(ctx context.Context, id string) (*entity.Candidate, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return nil, notFound(id)
	}
	c, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError("load", id, err)
	}
	return c, nil
}

// buildStatus folds the ledger into sent templates, future interviews and the
// follow-ups still owed to the candidate.
func buildStatus(c *entity.Candidate, events []entity.AutomationEvent, now time.Time) AutomationStatus {
	status := AutomationStatus{
		EmailsSent:         []entity.TemplateType{},
		UpcomingInterviews: []UpcomingInterview{},
		PendingActions:     []string{},
	}

	sent := make(map[entity.TemplateType]bool)
	pastInterview := false
	for _, e := range events {
		if e.Template != "" && !sent[e.Template] {
			sent[e.Template] = true
			status.EmailsSent = append(status.EmailsSent, e.Template)
		}
		if e.InterviewDate == nil {
			continue
		}
		if e.InterviewDate.After(now) {
			status.UpcomingInterviews = append(status.UpcomingInterviews, UpcomingInterview{Date: *e.InterviewDate, Type: e.InterviewType})
		} else {
			pastInterview = true
		}
	}
	sort.SliceStable(status.UpcomingInterviews, func(i, j int) bool {
		return status.UpcomingInterviews[i].Date.Before(status.UpcomingInterviews[j].Date)
	})

	if c.AssessmentStatus == entity.StatusPending {
		status.PendingActions = append(status.PendingActions, ActionSendAssessment)
	}
	if c.Stage == entity.StageInterview && len(status.UpcomingInterviews) == 0 && !pastInterview {
		status.PendingActions = append(status.PendingActions, ActionScheduleInterview)
	}
	if pastInterview && len(status.UpcomingInterviews) == 0 && c.Stage != entity.StageHired {
		status.PendingActions = append(status.PendingActions, ActionScheduleFollowup)
	}
	return status
}
