package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/customer/domain"
	"github.com/smallbiznis/lodgera/pkg/db"
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
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.Customer{}, err
	}

	now := s.clock.Now()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Kind:      domain.KindCustomer,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Customer{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByEmail(ctx, s.db, normalized)
}

func (s *Service) ResolveGuest(ctx context.Context, name, email string) (domain.Customer, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return domain.Customer{}, err
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, normalized)
	if err != nil {
		return domain.Customer{}, err
	}
	if existing != nil {
		if existing.Kind != domain.KindCustomer {
			return domain.Customer{}, domain.ErrKindMismatch
		}
		return *existing, nil
	}

	created, err := s.Create(ctx, domain.CreateCustomerRequest{Name: name, Email: normalized})
	if err == nil {
		return created, nil
	}
	// Lost a create race; the row now exists, re-read it.
	if db.IsDuplicateKeyErr(err) {
		existing, findErr := s.repo.FindByEmail(ctx, s.db, normalized)
		if findErr != nil {
			return domain.Customer{}, findErr
		}
		if existing != nil {
			if existing.Kind != domain.KindCustomer {
				return domain.Customer{}, domain.ErrKindMismatch
			}
			return *existing, nil
		}
	}
	return domain.Customer{}, err
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || !strings.Contains(normalized, "@") {
		return "", domain.ErrInvalidEmail
	}
	return normalized, nil
}
