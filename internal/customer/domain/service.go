package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name  string
	Email string
}

// Service resolves identities by their natural key (email) and creates
// lightweight guest records on first contact.
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	// ResolveGuest finds the customer for email, creating one when absent.
	// An existing record of a different kind is a validation failure.
	ResolveGuest(ctx context.Context, name, email string) (Customer, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_customer_id")
	ErrKindMismatch = errors.New("customer_kind_mismatch")
	ErrNotFound     = errors.New("customer_not_found")
)
