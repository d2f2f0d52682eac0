package service

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/marceloamor/reading-list-manager/internal/model"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8

	titleMaxLen  = 255
	authorMaxLen = 255
	genreMaxLen  = 100
	notesMaxLen  = 1000
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validateCredentials checks registration input against every rule and
// returns the full list of violations, not just the first.
func validateCredentials(username, password, confirmation string) []string {
	var violations []string

	// All length bounds count characters, not bytes, so multi-byte input is
	// measured the way a reader would count it.
	if utf8.RuneCountInString(username) < usernameMinLen || utf8.RuneCountInString(username) > usernameMaxLen {
		violations = append(violations, fmt.Sprintf("username must be between %d and %d characters", usernameMinLen, usernameMaxLen))
	}
	if username != "" && !usernameRegex.MatchString(username) {
		violations = append(violations, "username may only contain letters, digits, underscores and hyphens")
	}

	violations = append(violations, validatePassword(password)...)

	if password != confirmation {
		violations = append(violations, "password confirmation does not match")
	}

	return violations
}

// validatePassword enforces the strength rules: minimum length plus all four
// character classes.
func validatePassword(password string) []string {
	var violations []string

	if utf8.RuneCountInString(password) < passwordMinLen {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", passwordMinLen))
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasLower {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain a digit")
	}
	if !hasSymbol {
		violations = append(violations, "password must contain a symbol")
	}

	return violations
}

// validateBookInput checks book fields against every rule and returns the
// full list of violations.
func validateBookInput(in BookInput) []string {
	var violations []string

	if in.Title == "" {
		violations = append(violations, "title is required")
	}
	if utf8.RuneCountInString(in.Title) > titleMaxLen {
		violations = append(violations, fmt.Sprintf("title must be at most %d characters", titleMaxLen))
	}
	if utf8.RuneCountInString(in.Author) > authorMaxLen {
		violations = append(violations, fmt.Sprintf("author must be at most %d characters", authorMaxLen))
	}
	if utf8.RuneCountInString(in.Genre) > genreMaxLen {
		violations = append(violations, fmt.Sprintf("genre must be at most %d characters", genreMaxLen))
	}
	if utf8.RuneCountInString(in.Notes) > notesMaxLen {
		violations = append(violations, fmt.Sprintf("notes must be at most %d characters", notesMaxLen))
	}
	if in.Status != "" && !model.ValidStatus(model.BookStatus(in.Status)) {
		violations = append(violations, fmt.Sprintf("status must be one of %s, %s, %s", model.StatusToRead, model.StatusReading, model.StatusRead))
	}

	return violations
}
