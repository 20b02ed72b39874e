package domain

import "testing"

func TestOrderStatusValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !OrderStatus(s).Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	for _, s := range []string{"", "refunded", "PENDING", "Confirmed"} {
		if OrderStatus(s).Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusDelivered, StatusShipped, false},
		{StatusPending, StatusPending, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !StatusCancelled.IsTerminal() || !StatusDelivered.IsTerminal() {
		t.Error("cancelled and delivered must be terminal")
	}
	if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() || StatusShipped.IsTerminal() {
		t.Error("pending, confirmed and shipped must not be terminal")
	}
}
