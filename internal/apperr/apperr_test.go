package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", Validation("Name is required"), http.StatusBadRequest, "Name is required"},
		{"auth", Auth("Invalid token"), http.StatusUnauthorized, "Invalid token"},
		{"conflict", Conflict("exists"), http.StatusConflict, "exists"},
		{"not found", NotFound("Student not found"), http.StatusNotFound, "Student not found"},
		{"wrapped", fmt.Errorf("mark: %w", NotFound("Student not found")), http.StatusNotFound, "Student not found"},
		{"internal", Internal("db down", errors.New("boom")), http.StatusInternalServerError, "Internal server error"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.status {
				t.Fatalf("Status() = %d, want %d", got, tt.status)
			}
			if got := Message(tt.err); got != tt.message {
				t.Fatalf("Message() = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("insert failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if err.Error() != "insert failed: disk full" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
