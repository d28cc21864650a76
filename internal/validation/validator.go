package validation

import (
	"regexp"
	"strings"

	"edugen/internal/domain"
	"edugen/internal/dto"
)

// Saved quiz ids are ULIDs; UUIDs written by earlier versions are accepted too.
var quizIDPattern = regexp.MustCompile(`^[0-9A-Za-z-]{1,64}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest converts the request to canonical form data and
// validates it.
func (v *Validator) ValidateGenerateRequest(req dto.GenerateRequest) (domain.FormData, domain.ValidationErrors) {
	form := domain.FormData{
		Board:       domain.Board(req.Board),
		ClassLevel:  req.ClassLevel,
		Subject:     req.Subject,
		Topic:       req.Topic,
		RequestType: domain.RequestType(req.RequestType),
		Language:    domain.Language(req.Language),
		Difficulty:  domain.Difficulty(req.Difficulty),
		Year:        req.Year,
		ExamType:    req.ExamType,
	}.Normalize()
	return form, form.Validate()
}

// ValidateQuizID validates a Question Bank id path parameter
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !quizIDPattern.MatchString(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// ValidateScoreRequest checks the selections list is present and every entry
// is -1 or a non-negative index. Range against the quiz is checked on scoring.
func (v *Validator) ValidateScoreRequest(req dto.ScoreRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Selections == nil {
		errors = append(errors, domain.NewMissingFieldError("selections"))
		return errors
	}
	for _, s := range req.Selections {
		if s < -1 {
			errors = append(errors, domain.NewOutOfRangeError("selections", s, -1, domain.QuizOptionCount-1))
			break
		}
	}

	return errors
}
