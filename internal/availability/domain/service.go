package domain

import (
	"context"
	"errors"

	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
)

type CheckRequest struct {
	ResourceIDs          []string
	CheckIn              string
	CheckOut             string
	ExcludeReservationID string
}

type CheckResponse struct {
	Available bool                                `json:"available"`
	Conflicts []reservationdomain.ConflictSummary `json:"conflicts"`
}

// Service answers advisory availability queries. Results are a race-prone
// hint: the reservation store re-runs the same overlap predicate inside its
// insert transaction, which is the only authoritative answer.
type Service interface {
	Check(ctx context.Context, req CheckRequest) (CheckResponse, error)
}

var (
	ErrInvalidResourceIDs = errors.New("invalid_resource_ids")
	ErrInvalidDates       = errors.New("invalid_dates")
	ErrInvalidExcludeID   = errors.New("invalid_exclude_reservation_id")
)
