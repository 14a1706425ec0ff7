package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/smallbiznis/lodgera/pkg/db/pagination"
)

type CreateReservationRequest struct {
	GuestName   string
	GuestEmail  string
	ResourceIDs []string
	CheckIn     string
	CheckOut    string
	Guests      int
	AgentID     string
}

type UpdateStatusRequest struct {
	ReservationID string
	Status        string
	// Actor is recorded on ledger entries produced by this transition.
	Actor string
}

type ListReservationsRequest struct {
	PageToken string
	PageSize  int32
	Status    string
}

type ListReservationsResponse struct {
	pagination.PageInfo
	Reservations []Reservation `json:"reservations"`
}

type Service interface {
	Create(ctx context.Context, req CreateReservationRequest) (Reservation, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (Reservation, error)
	GetByID(ctx context.Context, id string) (Reservation, error)
	List(ctx context.Context, req ListReservationsRequest) (ListReservationsResponse, error)
}

var (
	ErrInvalidGuestName    = errors.New("invalid_guest_name")
	ErrInvalidResourceIDs  = errors.New("invalid_resource_ids")
	ErrTooManyResources    = errors.New("too_many_resources")
	ErrInvalidDates        = errors.New("invalid_dates")
	ErrCheckInPast         = errors.New("check_in_in_past")
	ErrCheckInTooFar       = errors.New("check_in_too_far_ahead")
	ErrInvalidGuests       = errors.New("invalid_guests")
	ErrCapacityExceeded    = errors.New("capacity_exceeded")
	ErrResourceInactive    = errors.New("resource_inactive")
	ErrInvalidID           = errors.New("invalid_reservation_id")
	ErrNotFound            = errors.New("reservation_not_found")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidTransition   = errors.New("invalid_status_transition")
)

// ConflictError reports that the requested range overlaps existing
// PENDING/CONFIRMED reservations. It carries the conflicting summaries so the
// caller can present alternatives.
type ConflictError struct {
	Conflicts []ConflictSummary
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reservation conflict: %d overlapping reservation(s)", len(e.Conflicts))
}

// TransitionError names the rejected status pair.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
