package validator

import (
	"errors"
	"testing"
)

func TestValidator_Struct(t *testing.T) {
	v := New()

	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,max=10"`
	}

	if err := v.Validate(form{Email: "sam@example.com", Name: "Sam"}); err != nil {
		t.Fatalf("Valid struct rejected: %v", err)
	}

	err := v.Validate(form{Email: "not-an-email", Name: ""})
	if err == nil {
		t.Fatal("Invalid struct accepted")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("Expected 2 field errors, got %d", len(verrs))
	}
}

func TestValidator_SlugRule(t *testing.T) {
	v := New()

	valid := []string{"software", "data-science", "ai-ml-2024"}
	for _, slug := range valid {
		if err := v.Var("slug", slug, "slug"); err != nil {
			t.Errorf("Valid slug %q rejected: %v", slug, err)
		}
	}

	invalid := []string{"", "Data Science", "UPPER", "trailing-", "-leading", "double--dash", "accenté"}
	for _, slug := range invalid {
		if err := v.Var("slug", slug, "slug"); err == nil {
			t.Errorf("Invalid slug %q accepted", slug)
		}
	}
}
