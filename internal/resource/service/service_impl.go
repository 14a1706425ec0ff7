package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/resource/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:   p.Log.Named("resource.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateResourceRequest) (domain.Resource, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Resource{}, domain.ErrInvalidName
	}
	if req.NightlyAmount <= 0 {
		return domain.Resource{}, domain.ErrInvalidAmount
	}
	if req.MaxGuests <= 0 {
		return domain.Resource{}, domain.ErrInvalidMaxGuests
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	metadata := datatypes.JSONMap{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	now := s.clock.Now()
	resource := domain.Resource{
		ID:            s.genID.Generate(),
		Slug:          slug.Make(name),
		Name:          name,
		NightlyAmount: req.NightlyAmount,
		Currency:      currency,
		MaxGuests:     req.MaxGuests,
		Active:        true,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &resource); err != nil {
		return domain.Resource{}, err
	}

	return resource, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Resource, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Resource{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Resource{}, err
	}
	if item == nil {
		return domain.Resource{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) GetByIDs(ctx context.Context, ids []string) ([]domain.Resource, error) {
	parsed := make([]snowflake.ID, 0, len(ids))
	for _, id := range ids {
		p, err := parseID(id)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}

	items, err := s.repo.FindByIDs(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}

	resources := make([]domain.Resource, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		resources = append(resources, *item)
	}
	return resources, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Resource, error) {
	items, err := s.repo.List(ctx, s.db, activeOnly)
	if err != nil {
		return nil, err
	}

	resources := make([]domain.Resource, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		resources = append(resources, *item)
	}
	return resources, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.SetActive(ctx, s.db, parsed, false)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
