package validation

import (
	"strings"
	"unicode/utf8"

	"taskboard/internal/config"
	"taskboard/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateNewTask validates the user-supplied fields of a task to create.
// An empty status is allowed and means the default.
func (tv *TaskValidator) ValidateNewTask(in domain.NewTaskInput) error {
	validationError := NewValidationError()

	tv.checkTitle(validationError, in.Title)
	tv.checkDescription(validationError, in.Description)
	if in.Status != "" {
		tv.checkStatus(validationError, in.Status)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidatePatch validates the fields present in a partial update
func (tv *TaskValidator) ValidatePatch(patch domain.TaskPatch) error {
	validationError := NewValidationError()

	if patch.Title != nil {
		tv.checkTitle(validationError, *patch.Title)
	}
	if patch.Description != nil {
		tv.checkDescription(validationError, *patch.Description)
	}
	if patch.Status != nil {
		tv.checkStatus(validationError, *patch.Status)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTaskID validates a store-assigned task id. Ids are opaque, so only
// emptiness is checked here; the store decides whether the id exists.
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("id")
		return validationError
	}
	return nil
}

func (tv *TaskValidator) checkTitle(ve *ValidationError, title string) {
	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		ve.AddRequiredError("title")
		return
	}
	maxLen := tv.validator.titleMaxLength()
	if !tv.validator.IsValidStringLength(trimmed, 1, maxLen) {
		ve.AddInvalidLengthError("title", trimmed, 1, maxLen)
	}
}

func (tv *TaskValidator) checkDescription(ve *ValidationError, description string) {
	maxLen := tv.validator.descriptionMaxLength()
	if utf8.RuneCountInString(description) > maxLen {
		ve.AddInvalidLengthError("description", len(description), 0, maxLen)
	}
}

func (tv *TaskValidator) checkStatus(ve *ValidationError, status domain.Status) {
	if !tv.validator.IsValidStatus(status) {
		names := make([]string, len(domain.Statuses))
		for i, s := range domain.Statuses {
			names[i] = s.String()
		}
		ve.AddInvalidValueError("status", status, "must be one of "+strings.Join(names, ", "))
	}
}
