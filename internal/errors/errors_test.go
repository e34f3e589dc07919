package errors

import (
	"fmt"
	"testing"
)

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("test error")
	ee := New(err).Build()

	if ee.Err.Error() != "test error" {
		t.Errorf("Expected error message 'test error', got '%s'", ee.Err.Error())
	}

	if ee.Category != CategoryGeneric {
		t.Errorf("Expected category 'generic' by default, got '%s'", ee.Category)
	}
}

func TestBuilderSetsComponentAndCategory(t *testing.T) {
	t.Parallel()

	ee := Newf("status %d", 502).
		Category(CategoryHTTPStatus).
		Component("pfam").
		Context("status_code", 502).
		Build()

	if ee.GetComponent() != "pfam" {
		t.Errorf("Expected component 'pfam', got '%s'", ee.GetComponent())
	}
	if ee.Category != CategoryHTTPStatus {
		t.Errorf("Expected category 'http-status', got '%s'", ee.Category)
	}
	if got := ee.GetContext()["status_code"]; got != 502 {
		t.Errorf("Expected status_code context 502, got %v", got)
	}
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	ee := Newf("oops").Category(CategoryRemote).Build()
	wrapped := fmt.Errorf("fetch family: %w", ee)

	if !IsCategory(wrapped, CategoryRemote) {
		t.Error("Expected IsCategory to match through wrapping")
	}
	if IsCategory(wrapped, CategoryXMLParsing) {
		t.Error("Expected IsCategory to reject a different category")
	}
}

func TestCategoryHeuristics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"timeout", fmt.Errorf("context deadline exceeded"), CategoryTimeout},
		{"network", fmt.Errorf("dial tcp: connection refused"), CategoryNetwork},
		{"xml", fmt.Errorf("XML syntax error on line 3"), CategoryXMLParsing},
		{"generic", fmt.Errorf("something odd"), CategoryGeneric},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := New(tt.err).Build().Category; got != tt.want {
				t.Errorf("detectCategory(%q) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestContextCopyIsIsolated(t *testing.T) {
	t.Parallel()

	ee := Newf("x").Context("k", "v").Build()
	ctx := ee.GetContext()
	ctx["k"] = "mutated"

	if ee.GetContext()["k"] != "v" {
		t.Error("GetContext must return a copy, not the internal map")
	}
}
