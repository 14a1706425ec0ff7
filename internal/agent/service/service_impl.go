package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/agent/domain"
	"github.com/smallbiznis/lodgera/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("agent.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAgentRequest) (domain.Agent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Agent{}, domain.ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Agent{}, domain.ErrInvalidEmail
	}

	role := domain.Role(strings.TrimSpace(req.Role))
	if role == "" {
		role = domain.RoleSales
	}
	switch role {
	case domain.RoleSales, domain.RoleManager:
	default:
		return domain.Agent{}, domain.ErrInvalidRole
	}

	now := s.clock.Now()
	agent := domain.Agent{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &agent); err != nil {
		return domain.Agent{}, err
	}

	return agent, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Agent, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Agent{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Agent{}, err
	}
	if item == nil {
		return domain.Agent{}, domain.ErrNotFound
	}
	return *item, nil
}
