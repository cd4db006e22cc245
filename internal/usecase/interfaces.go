package usecase

import (
	"context"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
	"github.com/xavierca1/recruit-pipeline/internal/infra/queue"
)

type NotificationPublisher interface {
	PublishNotification(ctx context.Context, payload queue.NotificationPayload) error
}

// SnapshotRefresher is told about every successful write so the next read sees it.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) error
}

type SettingsProvider interface {
	Current() entity.AutomationSettings
}

// AutomationLedger records what automation did for each candidate.
type AutomationLedger interface {
	Record(event entity.AutomationEvent)
	Events(candidateID string) []entity.AutomationEvent
}

// StageChangeRecorder counts committed stage transitions.
type StageChangeRecorder interface {
	StageChanged(from, to entity.Stage)
}
