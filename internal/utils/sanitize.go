package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxNameLength    = 100
	MaxContentLength = 5000
)

// Basic local@domain shape, same check the comment form applies client-side.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError describes a rejected submission field. Always
// client-caused, rendered as a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CommentInput is a raw public submission before any cleaning.
type CommentInput struct {
	Post     string `json:"post"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// SanitizeComment validates a raw submission and returns a copy safe to
// persist and echo. Rules short-circuit in order: required fields, length
// bounds (checked on the raw trimmed value), email shape, then a single
// HTML-escape pass over every user-controlled string.
func SanitizeComment(in CommentInput) (CommentInput, error) {
	out := CommentInput{
		Post:     strings.TrimSpace(in.Post),
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Content:  strings.TrimSpace(in.Content),
		ParentID: in.ParentID,
	}

	// A zero parent_id means "no parent": ids start at 1, and clients
	// send 0 interchangeably with omitting the field.
	if out.ParentID != nil && *out.ParentID == 0 {
		out.ParentID = nil
	}

	if out.Post == "" || out.Name == "" || out.Content == "" {
		return CommentInput{}, &ValidationError{
			Field:   missingField(out),
			Message: "Missing required fields: post, name, and content are required",
		}
	}
	// Bounds are in characters, not bytes; the blog is bilingual and
	// multi-byte names and comments are the normal case.
	if utf8.RuneCountInString(out.Name) > MaxNameLength {
		return CommentInput{}, &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("Name too long (max %d characters)", MaxNameLength),
		}
	}
	if utf8.RuneCountInString(out.Content) > MaxContentLength {
		return CommentInput{}, &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("Comment too long (max %d characters)", MaxContentLength),
		}
	}
	if out.Email != "" && !emailRegexp.MatchString(out.Email) {
		return CommentInput{}, &ValidationError{Field: "email", Message: "Invalid email format"}
	}

	// Single escape pass, exactly once, after validation.
	out.Post = html.EscapeString(out.Post)
	out.Name = html.EscapeString(out.Name)
	out.Email = html.EscapeString(out.Email)
	out.Content = html.EscapeString(out.Content)

	return out, nil
}

func missingField(in CommentInput) string {
	switch {
	case in.Post == "":
		return "post"
	case in.Name == "":
		return "name"
	default:
		return "content"
	}
}
