package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 72 // bcrypt ignores anything past 72 bytes
	MaxTitleLength    = 200
)

var validate = validator.New()

// FieldError describes why a single field was rejected
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field failure of one request
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation accumulates field checks and produces a single outcome.
type Validation struct {
	fields []FieldError
}

// Check records msg against field when ok is false.
func (v *Validation) Check(ok bool, field, msg string) {
	if !ok {
		v.fields = append(v.fields, FieldError{Field: field, Message: msg})
	}
}

// Add records the result of a field validator, if any.
func (v *Validation) Add(fe *FieldError) {
	if fe != nil {
		v.fields = append(v.fields, *fe)
	}
}

// Err returns nil when every check passed.
func (v *Validation) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// ValidateEmail checks presence and address format.
func ValidateEmail(field, email string) *FieldError {
	if strings.TrimSpace(email) == "" {
		return &FieldError{Field: field, Message: "is required"}
	}
	if err := validate.Var(email, "email"); err != nil {
		return &FieldError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}

// ValidatePassword checks the length bounds for a new password.
func ValidatePassword(field, password string) *FieldError {
	if password == "" {
		return &FieldError{Field: field, Message: "is required"}
	}
	if len(password) < MinPasswordLength {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	if len(password) > MaxPasswordLength {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be at most %d bytes", MaxPasswordLength)}
	}
	return nil
}

// ValidateCategory checks the value is one of Categories.
func ValidateCategory(field, category string) *FieldError {
	if category == "" {
		return &FieldError{Field: field, Message: "is required"}
	}
	if !slices.Contains(Categories, category) {
		return &FieldError{Field: field, Message: "must be one of " + strings.Join(Categories, ", ")}
	}
	return nil
}

// ValidateURL accepts an absent or empty value, otherwise requires an absolute URL.
func ValidateURL(field string, raw *string) *FieldError {
	if raw == nil || *raw == "" {
		return nil
	}
	if err := validate.Var(*raw, "url"); err != nil {
		return &FieldError{Field: field, Message: "must be a valid URL"}
	}
	return nil
}

func validateText(field, value string, max int) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: "must not be empty"}
	}
	if max > 0 && len(value) > max {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}

// ValidateRegister validates a registration body.
func (r RegisterRequest) ValidateRegister() error {
	var v Validation
	v.Add(ValidateEmail("email", r.Email))
	v.Add(ValidatePassword("password", r.Password))
	return v.Err()
}

// ValidateLogin only requires both fields; length rules would leak policy to guessers.
func (r RegisterRequest) ValidateLogin() error {
	var v Validation
	v.Check(strings.TrimSpace(r.Email) != "", "email", "is required")
	v.Check(r.Password != "", "password", "is required")
	return v.Err()
}

// Validate checks a post creation body.
func (r CreatePostRequest) Validate() error {
	var v Validation
	v.Add(validateText("title", r.Title, MaxTitleLength))
	v.Add(validateText("content", r.Content, 0))
	v.Add(ValidateCategory("category", r.Category))
	v.Add(ValidateURL("imageUrl", r.ImageURL))
	return v.Err()
}

// Validate checks only the fields present in the update.
func (r UpdatePostRequest) Validate() error {
	var v Validation
	v.Check(!r.IsEmpty(), "body", "at least one field must be provided")
	if r.Title != nil {
		v.Add(validateText("title", *r.Title, MaxTitleLength))
	}
	if r.Content != nil {
		v.Add(validateText("content", *r.Content, 0))
	}
	if r.Category != nil {
		v.Add(ValidateCategory("category", *r.Category))
	}
	v.Add(ValidateURL("imageUrl", r.ImageURL.Value))
	return v.Err()
}

// Validate checks only the fields present in the update.
func (r UpdateUserRequest) Validate() error {
	var v Validation
	v.Check(r.Email != nil || r.Password != nil, "body", "at least one field must be provided")
	if r.Email != nil {
		v.Add(ValidateEmail("email", *r.Email))
	}
	if r.Password != nil {
		v.Add(ValidatePassword("password", *r.Password))
	}
	return v.Err()
}
