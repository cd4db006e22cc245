package usecase

import (
	"context"
	"fmt"
	"log"
)

// Transaction runs steps in order and, when one fails, runs the compensations
// of the steps that already succeeded in reverse order.
type Transaction struct {
	steps []step
}

type step struct {
	name       string
	run        func(context.Context) error
	compensate func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddStep registers a step. compensate may be nil for steps with nothing to undo.
func (t *Transaction) AddStep(name string, run, compensate func(context.Context) error) {
	t.steps = append(t.steps, step{name: name, run: run, compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.run(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("step '%s' failed: %w (rolled back %d steps)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			log.Printf("[TX] WARNING: compensation '%s' failed: %v (inconsistency risk)", s.name, err)
		}
	}
}
