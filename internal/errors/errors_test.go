package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "protocol error",
			code:    "E001",
			wantMsg: "Hook called outside a rebuild pass",
			wantCat: CategoryProtocol,
		},
		{
			name:    "runtime error",
			code:    "E020",
			wantMsg: "Effect body failed",
			wantCat: CategoryRuntime,
		},
		{
			name:    "misuse warning",
			code:    "E040",
			wantMsg: "Event wrapper invoked during build",
			wantCat: CategoryMisuse,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryRuntime, "slot %d not found", 3)
	if err.Message != "slot 3 not found" {
		t.Errorf("Message = %q, want %q", err.Message, "slot 3 not found")
	}
	if err.Category != CategoryRuntime {
		t.Errorf("Category = %q, want %q", err.Category, CategoryRuntime)
	}
}

func TestLoomError_Error(t *testing.T) {
	err := New("E001")
	got := err.Error()
	want := "E001: Hook called outside a rebuild pass"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Without code
	err2 := &LoomError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}
}

func TestLoomError_WithSuggestion(t *testing.T) {
	err := New("E002").WithSuggestion("Hoist the hook above the conditional")
	if err.Suggestion != "Hoist the hook above the conditional" {
		t.Errorf("Suggestion = %q, want %q", err.Suggestion, "Hoist the hook above the conditional")
	}
}

func TestLoomError_WithDetail(t *testing.T) {
	err := New("E002").WithDetail("slot %d held %s, call site wants %s", 2, "useEffect", "useState")
	want := "slot 2 held useEffect, call site wants useState"
	if err.Detail != want {
		t.Errorf("Detail = %q, want %q", err.Detail, want)
	}
}

func TestLoomError_Wrap(t *testing.T) {
	inner := New("E020")
	outer := New("E021").Wrap(inner)

	if outer.Wrapped != inner {
		t.Error("Wrapped error mismatch")
	}
	if !errors.Is(outer, inner) {
		t.Error("errors.Is should see through Wrap")
	}
}

func TestFromError(t *testing.T) {
	// nil error
	if FromError(nil, "E020") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	// Already a LoomError
	le := New("E020")
	if FromError(le, "E021") != le {
		t.Error("FromError should return LoomError as-is")
	}

	// Standard error
	stdErr := errors.New("boom")
	result := FromError(stdErr, "E020")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if result.Code != "E020" {
		t.Errorf("Code = %q, want %q", result.Code, "E020")
	}
}

func TestLookup(t *testing.T) {
	template, ok := Lookup("E003")
	if !ok {
		t.Fatal("E003 should exist")
	}
	if template.Message != "Fewer hooks reached than on previous rebuild" {
		t.Errorf("Message = %q", template.Message)
	}
	if template.DocURL == "" {
		t.Error("DocURL should be set for registered codes")
	}

	if _, ok := Lookup("E999"); ok {
		t.Error("E999 should not exist")
	}
}

func TestRegistryCoverage(t *testing.T) {
	// Every code the runtime raises must be registered.
	for _, code := range []string{"E001", "E002", "E003", "E004", "E005", "E006", "E007", "E020", "E021", "E040"} {
		if _, ok := Lookup(code); !ok {
			t.Errorf("code %s missing from registry", code)
		}
	}
}
