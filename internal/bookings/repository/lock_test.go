package repository

import (
	"strings"
	"testing"
	"time"
)

func TestLockKey_Deterministic(t *testing.T) {
	checkIn := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	a := LockKey([]string{"room1", "room2"}, checkIn, checkOut)
	b := LockKey([]string{"room2", "room1"}, checkIn, checkOut)

	if a != b {
		t.Errorf("expected room order not to matter: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "booking_lock_") {
		t.Errorf("unexpected key prefix: %q", a)
	}
}

func TestLockKey_DistinctInputsDistinctKeys(t *testing.T) {
	checkIn := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	base := LockKey([]string{"room1"}, checkIn, checkOut)

	if got := LockKey([]string{"room2"}, checkIn, checkOut); got == base {
		t.Error("different rooms produced the same key")
	}
	if got := LockKey([]string{"room1"}, checkIn.AddDate(0, 0, 1), checkOut); got == base {
		t.Error("different check-in produced the same key")
	}
	if got := LockKey([]string{"room1"}, checkIn, checkOut.AddDate(0, 0, 1)); got == base {
		t.Error("different check-out produced the same key")
	}
}

func TestOverlapFilterShape(t *testing.T) {
	checkIn := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	filter := overlapFilter(checkIn, checkOut)

	if _, ok := filter["status"]; !ok {
		t.Error("expected status clause in overlap filter")
	}
	if _, ok := filter["check_in"]; !ok {
		t.Error("expected check_in clause in overlap filter")
	}
	if _, ok := filter["check_out"]; !ok {
		t.Error("expected check_out clause in overlap filter")
	}
}
