package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStage            = errors.New("invalid stage")
	ErrInvalidAssessmentStatus = errors.New("invalid assessment status")
)

// Stage is the phase of the recruiting pipeline a candidate currently occupies.
type Stage string

const (
	StageApplyingPeriod Stage = "Applying Period"
	StageScreening      Stage = "Screening"
	StageInterview      Stage = "Interview"
	StageTest           Stage = "Test"

	// StageHired is terminal. Hired candidates leave the board and only feed time-to-hire.
	StageHired Stage = "Hired"
)

// BoardStages returns the pipeline columns in board order.
func BoardStages() []Stage {
	return []Stage{StageApplyingPeriod, StageScreening, StageInterview, StageTest}
}

func (s Stage) IsBoardStage() bool {
	switch s {
	case StageApplyingPeriod, StageScreening, StageInterview, StageTest:
		return true
	}
	return false
}

func (s Stage) Valid() bool {
	return s.IsBoardStage() || s == StageHired
}

func ParseStage(raw string) (Stage, error) {
	st := Stage(strings.TrimSpace(raw))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, raw)
	}
	return st, nil
}

func (s *Stage) UnmarshalText(b []byte) error {
	st, err := ParseStage(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// AssessmentStatus tracks the evaluation task of the candidate's current stage.
type AssessmentStatus string

const (
	StatusPending    AssessmentStatus = "Pending"
	StatusInProgress AssessmentStatus = "In Progress"
	StatusCompleted  AssessmentStatus = "Completed"
)

func AssessmentStatuses() []AssessmentStatus {
	return []AssessmentStatus{StatusPending, StatusInProgress, StatusCompleted}
}

func (s AssessmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func ParseAssessmentStatus(raw string) (AssessmentStatus, error) {
	st := AssessmentStatus(strings.TrimSpace(raw))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssessmentStatus, raw)
	}
	return st, nil
}

func (s *AssessmentStatus) UnmarshalText(b []byte) error {
	st, err := ParseAssessmentStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
