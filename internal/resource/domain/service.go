package domain

import (
	"context"
	"errors"
)

type CreateResourceRequest struct {
	Name          string
	NightlyAmount int64
	Currency      string
	MaxGuests     int
	Metadata      map[string]any
}

type Service interface {
	Create(ctx context.Context, req CreateResourceRequest) (Resource, error)
	GetByID(ctx context.Context, id string) (Resource, error)
	GetByIDs(ctx context.Context, ids []string) ([]Resource, error)
	List(ctx context.Context, activeOnly bool) ([]Resource, error)
	Deactivate(ctx context.Context, id string) error
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidAmount    = errors.New("invalid_nightly_amount")
	ErrInvalidMaxGuests = errors.New("invalid_max_guests")
	ErrInvalidID        = errors.New("invalid_resource_id")
	ErrNotFound         = errors.New("resource_not_found")
)
