package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, agent *Agent) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Agent, error)
}

type CreateAgentRequest struct {
	Name  string
	Email string
	Role  string
}

type Service interface {
	Create(ctx context.Context, req CreateAgentRequest) (Agent, error)
	GetByID(ctx context.Context, id string) (Agent, error)
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidRole  = errors.New("invalid_role")
	ErrInvalidID    = errors.New("invalid_agent_id")
	ErrNotFound     = errors.New("agent_not_found")
	ErrInactive     = errors.New("agent_inactive")
)
