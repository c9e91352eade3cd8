package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(errors.New("boom")); got != "Error: boom" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("bad value %d", 7); got != "Error: bad value 7" {
		t.Errorf("Formatf = %q", got)
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load profile: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped ErrNotFound must still match with errors.Is")
	}
	if errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped ErrNotFound must not match a different sentinel")
	}
}
