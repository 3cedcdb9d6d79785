package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected string
		contains bool
	}{
		{"No errors", []FieldError{}, "validation error", false},
		{"Single error", []FieldError{{Field: "title", Message: "title is required"}}, "validation error for field 'title': title is required", false},
		{"Multiple errors", []FieldError{
			{Field: "title", Message: "title is required"},
			{Field: "status", Message: "status has invalid value"},
		}, "multiple validation errors", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.contains {
				if !strings.Contains(result, tt.expected) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expected)
				}
			} else if result != tt.expected {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Error("new ValidationError should not have errors")
	}

	ve.AddRequiredError("title")
	if !ve.HasErrors() {
		t.Error("ValidationError should have errors after AddRequiredError")
	}
}

func TestValidationError_AddRequiredError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")

	if len(ve.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(ve.Errors))
	}
	if ve.Errors[0].Type != ErrorTypeRequired {
		t.Errorf("Expected error type %v, got %v", ErrorTypeRequired, ve.Errors[0].Type)
	}
	if ve.Errors[0].Message != "title is required" {
		t.Errorf("Expected message 'title is required', got %s", ve.Errors[0].Message)
	}
}

func TestValidationError_AddInvalidLengthError(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		expected string
	}{
		{"Both bounds", 1, 255, "title must be between 1 and 255 characters long"},
		{"Min only", 3, 0, "title must be at least 3 characters long"},
		{"Max only", 0, 2000, "title must be at most 2000 characters long"},
		{"No bounds", 0, 0, "title has invalid length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			ve.AddInvalidLengthError("title", "x", tt.min, tt.max)
			if ve.Errors[0].Message != tt.expected {
				t.Errorf("Expected message %q, got %q", tt.expected, ve.Errors[0].Message)
			}
			if ve.Errors[0].Type != ErrorTypeInvalidLength {
				t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidLength, ve.Errors[0].Type)
			}
		})
	}
}

func TestValidationError_AddInvalidValueError(t *testing.T) {
	ve := NewValidationError()
	ve.AddInvalidValueError("status", "done", "must be one of pending, in-progress, completed")

	if ve.Errors[0].Type != ErrorTypeInvalidValue {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidValue, ve.Errors[0].Type)
	}
	if !strings.Contains(ve.Errors[0].Message, "must be one of") {
		t.Errorf("Expected message to contain reason, got %s", ve.Errors[0].Message)
	}
	if ve.Errors[0].Value != "done" {
		t.Errorf("Expected value 'done', got %v", ve.Errors[0].Value)
	}
}

func TestValidationError_GetFieldErrorsAndFields(t *testing.T) {
	ve := NewValidationError()
	ve.AddInvalidLengthError("title", "x", 1, 255)
	ve.AddRequiredError("title")
	ve.AddInvalidValueError("status", "x", "bad")

	if got := len(ve.GetFieldErrors("title")); got != 2 {
		t.Errorf("Expected 2 errors for 'title', got %d", got)
	}
	if got := len(ve.GetFieldErrors("description")); got != 0 {
		t.Errorf("Expected 0 errors for 'description', got %d", got)
	}

	fields := ve.Fields()
	if len(fields) != 2 || fields[0] != "title" || fields[1] != "status" {
		t.Errorf("Fields() = %v, expected [title status]", fields)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if got := ve.GetUserFriendlyMessage(); got != "Input validation failed" {
		t.Errorf("GetUserFriendlyMessage() = %q", got)
	}

	ve.AddRequiredError("title")
	if got := ve.GetUserFriendlyMessage(); got != "title is required" {
		t.Errorf("GetUserFriendlyMessage() = %q", got)
	}

	ve.AddInvalidValueError("status", "x", "bad")
	got := ve.GetUserFriendlyMessage()
	if !strings.Contains(got, "Multiple validation errors occurred") || !strings.Contains(got, "- title is required") {
		t.Errorf("GetUserFriendlyMessage() = %q", got)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")

	if !IsValidationError(ve) {
		t.Error("IsValidationError() = false, expected true for ValidationError")
	}
	if !IsValidationError(fmt.Errorf("create task: %w", ve)) {
		t.Error("IsValidationError() = false, expected true for wrapped ValidationError")
	}
	if IsValidationError(&FieldError{Field: "title", Message: "error"}) {
		t.Error("IsValidationError() = true, expected false for FieldError")
	}
	if IsValidationError(nil) {
		t.Error("IsValidationError(nil) = true")
	}
}
