// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package validation

import (
	"testing"
)

type registerForm struct {
	Email    string `json:"email" validate:"required,useremail"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"trimmin=2"`
}

type reviewForm struct {
	MovieID  string `json:"movie_id" validate:"notblank"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Feedback string `json:"feedback" validate:"trimmin=10"`
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStructValid(t *testing.T) {
	t.Parallel()

	form := registerForm{Email: "ana@example.com", Password: "secret1", Name: "Ana"}
	if err := ValidateStruct(&form); err != nil {
		t.Fatalf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantMsg   string
	}{
		{
			name:      "bad email",
			input:     &registerForm{Email: "not-an-email", Password: "secret1", Name: "Ana"},
			wantField: "email",
			wantMsg:   "Invalid email format",
		},
		{
			name:      "short password",
			input:     &registerForm{Email: "ana@example.com", Password: "abc", Name: "Ana"},
			wantField: "password",
			wantMsg:   "password must be at least 6 characters",
		},
		{
			name:      "name only spaces",
			input:     &registerForm{Email: "ana@example.com", Password: "secret1", Name: "  a  "},
			wantField: "name",
			wantMsg:   "name must be at least 2 characters",
		},
		{
			name:      "blank movie",
			input:     &reviewForm{MovieID: "   ", Rating: 3, Feedback: "long enough text"},
			wantField: "movie_id",
			wantMsg:   "movie_id is required",
		},
		{
			name:      "rating too high",
			input:     &reviewForm{MovieID: "movie_001", Rating: 6, Feedback: "long enough text"},
			wantField: "rating",
			wantMsg:   "rating must be less than or equal to 5",
		},
		{
			name:      "feedback too short",
			input:     &reviewForm{MovieID: "movie_001", Rating: 4, Feedback: "  short   "},
			wantField: "feedback",
			wantMsg:   "feedback must be at least 10 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors (%v), want 1", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if err.First() != tt.wantMsg {
				t.Errorf("First() = %q, want %q", err.First(), tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationErrorFields(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&reviewForm{})
	if err == nil {
		t.Fatal("expected errors for empty form")
	}
	fields := err.Fields()
	for _, f := range []string{"movie_id", "rating", "feedback"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("Fields() missing %s: %v", f, fields)
		}
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestEmailPattern(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "first.last+tag@sub.example.org", "x_y%z@host-name.io"}
	invalid := []string{"", "plain", "a@b", "a@b.c", "@example.com", "a b@example.com"}

	for _, s := range valid {
		if !EmailPattern.MatchString(s) {
			t.Errorf("%q should match", s)
		}
	}
	for _, s := range invalid {
		if EmailPattern.MatchString(s) {
			t.Errorf("%q should not match", s)
		}
	}
}
