package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("bad field"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Authentication("who are you"), http.StatusUnauthorized},
		{Authorization("not allowed"), http.StatusForbidden},
		{Internal(errors.New("boom"), "failed"), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := Status(tc.err); got != tc.status {
			t.Fatalf("Status(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestInternalMessageHidden(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"), "Failed to create user")

	if msg := Message(err); msg != "Internal server error" {
		t.Fatalf("internal errors must not leak details, got %q", msg)
	}
}

func TestClientMessagePreserved(t *testing.T) {
	err := Validation("ID number already exists. Please use a different one.")

	if msg := Message(err); msg != "ID number already exists. Please use a different one." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("create member: %w", Validation("duplicate"))

	if !IsKind(err, KindValidation) {
		t.Fatalf("expected wrapped validation error to keep its kind")
	}
	if Status(err) != http.StatusBadRequest {
		t.Fatalf("expected wrapped validation error to map to 400")
	}
}
