package app

import "strings"

const maxTitleLength = 255

// FieldErrors maps a field name to its first violation message, the
// error bag handed back to the form view.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool { return len(e) == 0 }

// PostInput is the client-supplied content of a create or update form.
// Ownership is never part of it.
type PostInput struct {
	Title string
	Body  string
}

// Trimmed returns the input with surrounding whitespace removed from
// both fields, the form the validated values are persisted in.
func (in PostInput) Trimmed() PostInput {
	return PostInput{
		Title: strings.TrimSpace(in.Title),
		Body:  strings.TrimSpace(in.Body),
	}
}

// ValidatePostInput is the declarative schema for both create and
// update: title required and at most 255 characters, body required. It
// is a pure function; no store access happens before it passes.
func ValidatePostInput(in PostInput) FieldErrors {
	errs := FieldErrors{}
	trimmed := in.Trimmed()

	if trimmed.Title == "" {
		errs["title"] = "The title field is required."
	} else if len([]rune(trimmed.Title)) > maxTitleLength {
		errs["title"] = "The title field must not be greater than 255 characters."
	}

	if trimmed.Body == "" {
		errs["body"] = "The body field is required."
	}

	return errs
}
