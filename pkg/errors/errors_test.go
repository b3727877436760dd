package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NotFound("Booking"), http.StatusNotFound},
		{"validation", Validation("bad", nil), http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest},
		{"conflict", Conflict("race"), http.StatusConflict},
		{"no availability", NoAvailability("full"), http.StatusBadRequest},
		{"internal", Internal("boom", nil), http.StatusInternalServerError},
		{"timeout", Timeout("slow"), http.StatusGatewayTimeout},
		{"unavailable", Unavailable("mongo"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

// NO_AVAILABILITY is a supply problem and must not look retryable the way
// CONFLICT does.
func TestNoAvailabilityIsNotConflict(t *testing.T) {
	err := NoAvailability("sold out")

	if err.Code == CodeConflict {
		t.Error("NoAvailability must carry its own code")
	}
	if IsConflict(err) {
		t.Error("NoAvailability must not satisfy IsConflict")
	}
	if err.StatusCode() == http.StatusConflict {
		t.Error("NoAvailability must not map to 409")
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := Conflict("room taken")
	wrapped := fmt.Errorf("reserve: %w", inner)

	got := AsAppError(wrapped)
	if got == nil {
		t.Fatal("expected wrapped AppError to be found")
	}
	if got.Code != CodeConflict {
		t.Errorf("expected %s, got %s", CodeConflict, got.Code)
	}
	if !IsConflict(wrapped) {
		t.Error("IsConflict should see through wrapping")
	}
}

// Unknown errors degrade to a generic internal error so WriteError always
// has a status to map.
func TestAsAppError_PlainError(t *testing.T) {
	got := AsAppError(errors.New("plain"))
	if got == nil {
		t.Fatal("expected fallback AppError")
	}
	if got.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, got.Code)
	}
	if got.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", got.StatusCode())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("write failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
