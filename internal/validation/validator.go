// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

// Package validation wraps go-playground/validator v10 with a shared,
// lazily built validator and messages suitable for API responses.
//
// Field names in messages come from the json tag, so a failure on
//
//	type LoginRequest struct {
//	    Email string `json:"email" validate:"required,useremail"`
//	}
//
// reads "Invalid email format" rather than mentioning the Go field name.
//
// Custom tags:
//   - useremail: the address pattern accepted at registration
//   - notblank: non-empty after trimming whitespace
//   - trimmin=N: at least N characters after trimming
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// EmailPattern is the address format accepted for user accounts.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	field   string
	tag     string
	param   string
	message string
}

// Field returns the json name of the failing field.
func (e *FieldError) Field() string { return e.field }

// Tag returns the failing validation tag.
func (e *FieldError) Tag() string { return e.tag }

// Param returns the tag parameter, e.g. "10" for min=10.
func (e *FieldError) Param() string { return e.param }

// Error returns the human-readable message.
func (e *FieldError) Error() string { return e.message }

// RequestValidationError collects every failed rule of one struct.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the individual field errors.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

// Error joins all messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// First returns the message of the first failed rule.
func (ve *RequestValidationError) First() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	return ve.errors[0].message
}

// Fields returns field -> message for the API error details.
func (ve *RequestValidationError) Fields() map[string]string {
	out := make(map[string]string, len(ve.errors))
	for _, e := range ve.errors {
		if _, seen := out[e.field]; !seen {
			out[e.field] = e.message
		}
	}
	return out
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister(v, "useremail", func(fl validator.FieldLevel) bool {
			return EmailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		mustRegister(v, "trimmin", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
		})

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// ValidateStruct validates s and returns nil or a *RequestValidationError.
//
// The return type is the concrete pointer so callers can check for nil
// without the typed-nil interface pitfall.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{errors: []FieldError{{
			field:   "request",
			tag:     "invalid",
			message: err.Error(),
		}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

var messageTemplates = map[string]string{
	"required":  "%s is required",
	"notblank":  "%s is required",
	"email":     "%s must be a valid email address",
	"useremail": "Invalid email format",
	"uuid4":     "%s must be a valid UUID",
}

var paramTemplates = map[string]string{
	"oneof":   "%s must be one of: %s",
	"gte":     "%s must be greater than or equal to %s",
	"lte":     "%s must be less than or equal to %s",
	"trimmin": "%s must be at least %s characters",
}

func translateError(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tmpl, ok := messageTemplates[tag]; ok {
		if strings.Contains(tmpl, "%s") {
			return fmt.Sprintf(tmpl, field)
		}
		return tmpl
	}
	if tmpl, ok := paramTemplates[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
