package utils

import (
	"errors"
	"strings"
	"testing"
)

func validInput() CommentInput {
	return CommentInput{
		Post:    "hello-world",
		Name:    "Ann",
		Email:   "ann@example.com",
		Content: "Nice post!",
	}
}

func TestSanitizeCommentValid(t *testing.T) {
	out, err := SanitizeComment(validInput())
	if err != nil {
		t.Fatalf("SanitizeComment failed: %v", err)
	}
	if out.Post != "hello-world" || out.Name != "Ann" || out.Content != "Nice post!" {
		t.Errorf("Unexpected sanitized output: %+v", out)
	}
}

func TestSanitizeCommentMissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*CommentInput)
	}{
		{"post", func(in *CommentInput) { in.Post = "" }},
		{"name", func(in *CommentInput) { in.Name = "   " }},
		{"content", func(in *CommentInput) { in.Content = "" }},
	}

	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		_, err := SanitizeComment(in)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Expected ValidationError for missing %s, got %v", tc.field, err)
		}
		if verr.Field != tc.field {
			t.Errorf("Expected field %s, got %s", tc.field, verr.Field)
		}
	}
}

func TestSanitizeCommentLengthBounds(t *testing.T) {
	in := validInput()
	in.Name = strings.Repeat("a", MaxNameLength+1)
	if _, err := SanitizeComment(in); err == nil {
		t.Error("Expected error for overlong name")
	}

	in = validInput()
	in.Name = strings.Repeat("a", MaxNameLength)
	if _, err := SanitizeComment(in); err != nil {
		t.Errorf("Name at the limit should pass, got %v", err)
	}

	in = validInput()
	in.Content = strings.Repeat("x", MaxContentLength+1)
	if _, err := SanitizeComment(in); err == nil {
		t.Error("Expected error for overlong content")
	}
}

func TestSanitizeCommentCountsCharactersNotBytes(t *testing.T) {
	// 40 Hangul characters are 120 bytes; the bound is on characters.
	in := validInput()
	in.Name = strings.Repeat("김", 40)
	if _, err := SanitizeComment(in); err != nil {
		t.Errorf("40-character multi-byte name should pass, got %v", err)
	}

	in = validInput()
	in.Name = strings.Repeat("김", MaxNameLength)
	if _, err := SanitizeComment(in); err != nil {
		t.Errorf("Multi-byte name at the limit should pass, got %v", err)
	}

	in = validInput()
	in.Name = strings.Repeat("김", MaxNameLength+1)
	if _, err := SanitizeComment(in); err == nil {
		t.Error("Expected error for 101-character multi-byte name")
	}

	in = validInput()
	in.Content = strings.Repeat("안", MaxContentLength)
	if _, err := SanitizeComment(in); err != nil {
		t.Errorf("Multi-byte content at the limit should pass, got %v", err)
	}
}

func TestSanitizeCommentZeroParentMeansRoot(t *testing.T) {
	zero := uint(0)
	in := validInput()
	in.ParentID = &zero

	out, err := SanitizeComment(in)
	if err != nil {
		t.Fatalf("SanitizeComment failed: %v", err)
	}
	if out.ParentID != nil {
		t.Error("A zero parent_id must be normalized to no parent")
	}

	real := uint(7)
	in = validInput()
	in.ParentID = &real
	out, err = SanitizeComment(in)
	if err != nil {
		t.Fatalf("SanitizeComment failed: %v", err)
	}
	if out.ParentID == nil || *out.ParentID != 7 {
		t.Error("A real parent_id must be preserved")
	}
}

func TestSanitizeCommentEmail(t *testing.T) {
	for _, bad := range []string{"not-an-email", "a@b", "a b@c.com", "@c.com"} {
		in := validInput()
		in.Email = bad
		if _, err := SanitizeComment(in); err == nil {
			t.Errorf("Expected error for email %q", bad)
		}
	}

	// Email is optional
	in := validInput()
	in.Email = ""
	if _, err := SanitizeComment(in); err != nil {
		t.Errorf("Empty email should pass, got %v", err)
	}
}

func TestSanitizeCommentEscapesMarkup(t *testing.T) {
	in := validInput()
	in.Name = `<script>alert("x")</script>`
	in.Content = "<b>hi</b>"

	out, err := SanitizeComment(in)
	if err != nil {
		t.Fatalf("SanitizeComment failed: %v", err)
	}
	if out.Content != "&lt;b&gt;hi&lt;/b&gt;" {
		t.Errorf("Expected escaped content, got %q", out.Content)
	}
	if strings.ContainsAny(out.Name, "<>\"") {
		t.Errorf("Name still contains markup characters: %q", out.Name)
	}
}

func TestSanitizeCommentValidatesBeforeEscaping(t *testing.T) {
	// 100 quote characters would blow past the limit if escaped first.
	in := validInput()
	in.Name = strings.Repeat(`"`, MaxNameLength)
	out, err := SanitizeComment(in)
	if err != nil {
		t.Fatalf("Length must be checked on the raw value, got %v", err)
	}
	if out.Name != strings.Repeat("&#34;", MaxNameLength) {
		t.Errorf("Unexpected escaped name: %q", out.Name)
	}
}
