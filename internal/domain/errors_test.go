package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("subject", "cannot attest for yourself")

	if got := err.Error(); got != "validation: subject — cannot attest for yourself" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestRateLimitedError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &RateLimitedError{RetryAfter: 90 * time.Second}
	if !errors.Is(err, ErrRateLimited) {
		t.Fatal("errors.Is(err, ErrRateLimited) = false")
	}
	if got := err.Error(); got != "rate limited: retry after 1m30s" {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrForbidden, ErrRateLimited,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestVerdict_Valid(t *testing.T) {
	t.Parallel()

	if !VerdictApprove.Valid() || !VerdictReject.Valid() {
		t.Fatal("known verdicts should be valid")
	}
	if Verdict("maybe").Valid() {
		t.Fatal("unknown verdict should be invalid")
	}
}
