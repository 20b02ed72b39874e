package domain

import "errors"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCancelled OrderStatus = "cancelled"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
)

var (
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// transitions holds the permitted moves of the order lifecycle.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped},
	StatusShipped:   {StatusDelivered},
}

func AllStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusConfirmed),
		string(StatusCancelled),
		string(StatusShipped),
		string(StatusDelivered),
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusDelivered
}

func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}
