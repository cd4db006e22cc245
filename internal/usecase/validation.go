package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

const (
	maxNameLength = 200
	maxSkills     = 50
)

var nonDigits = regexp.MustCompile(`\D`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateCandidateInput(input CreateCandidateInput) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateName(input.Name)...)

	if input.Stage != "" {
		if _, err := entity.ParseStage(input.Stage); err != nil {
			errors = append(errors, ValidationError{"stage", "must be one of Applying Period, Screening, Interview, Test, Hired"})
		}
	}
	if input.AssessmentStatus != "" {
		if _, err := entity.ParseAssessmentStatus(input.AssessmentStatus); err != nil {
			errors = append(errors, ValidationError{"assessmentStatus", "must be one of Pending, In Progress, Completed"})
		}
	}
	errors = append(errors, validateScore(input.OverallScore)...)
	errors = append(errors, validateDetails(input.Details)...)

	return errors
}

func ValidateUpdateCandidateInput(input UpdateCandidateInput) []ValidationError {
	var errors []ValidationError

	if input.Name != nil {
		errors = append(errors, validateName(*input.Name)...)
	}
	if input.Stage != nil {
		if _, err := entity.ParseStage(*input.Stage); err != nil {
			errors = append(errors, ValidationError{"stage", "must be one of Applying Period, Screening, Interview, Test, Hired"})
		}
	}
	if input.AssessmentStatus != nil {
		if _, err := entity.ParseAssessmentStatus(*input.AssessmentStatus); err != nil {
			errors = append(errors, ValidationError{"assessmentStatus", "must be one of Pending, In Progress, Completed"})
		}
	}
	if input.OverallScore != nil {
		errors = append(errors, validateScore(*input.OverallScore)...)
	}
	errors = append(errors, validateDetails(input.Details)...)

	return errors
}

func validateName(name string) []ValidationError {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return []ValidationError{{"name", "is required"}}
	case len(name) > maxNameLength:
		return []ValidationError{{"name", fmt.Sprintf("must not exceed %d characters", maxNameLength)}}
	}
	return nil
}

func validateScore(score int) []ValidationError {
	if score < entity.MinScore || score > entity.MaxScore {
		return []ValidationError{{"overallScore", "must be between 0 and 100"}}
	}
	return nil
}

func validateDetails(d *CandidateDetailsInput) []ValidationError {
	if d == nil {
		return nil
	}
	var errors []ValidationError

	if email := strings.TrimSpace(d.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errors = append(errors, ValidationError{"details.email", "is invalid"})
		}
	}
	if phone := strings.TrimSpace(d.Phone); phone != "" && !isValidPhoneNumber(phone) {
		errors = append(errors, ValidationError{"details.phone", "must be a valid phone number"})
	}
	if d.Experience < 0 {
		errors = append(errors, ValidationError{"details.experience", "must not be negative"})
	}
	if len(d.Skills) > maxSkills {
		errors = append(errors, ValidationError{"details.skills", fmt.Sprintf("must not exceed %d entries", maxSkills)})
	}
	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 7 && len(cleaned) <= 15
}

// validID rejects ids the store could never have issued.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
