package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/availability/domain"
	obsmetrics "github.com/smallbiznis/lodgera/internal/observability/metrics"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	resourcedomain "github.com/smallbiznis/lodgera/internal/resource/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Metrics *obsmetrics.Metrics

	ReservationRepo reservationdomain.Repository
	ResourceRepo    resourcedomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	metrics *obsmetrics.Metrics

	reservationRepo reservationdomain.Repository
	resourceRepo    resourcedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("availability.service"),
		metrics:         p.Metrics,
		reservationRepo: p.ReservationRepo,
		resourceRepo:    p.ResourceRepo,
	}
}

func (s *Service) Check(ctx context.Context, req domain.CheckRequest) (domain.CheckResponse, error) {
	if len(req.ResourceIDs) == 0 {
		return domain.CheckResponse{}, domain.ErrInvalidResourceIDs
	}

	resourceIDs := make([]snowflake.ID, 0, len(req.ResourceIDs))
	for _, raw := range req.ResourceIDs {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil || id == 0 {
			return domain.CheckResponse{}, domain.ErrInvalidResourceIDs
		}
		resourceIDs = append(resourceIDs, id)
	}

	resources, err := s.resourceRepo.FindByIDs(ctx, s.db, resourceIDs)
	if err != nil {
		return domain.CheckResponse{}, err
	}
	if len(resources) != len(resourceIDs) {
		return domain.CheckResponse{}, resourcedomain.ErrNotFound
	}

	checkIn, err := reservationdomain.ParseDate(req.CheckIn)
	if err != nil {
		return domain.CheckResponse{}, domain.ErrInvalidDates
	}
	checkOut, err := reservationdomain.ParseDate(req.CheckOut)
	if err != nil {
		return domain.CheckResponse{}, domain.ErrInvalidDates
	}
	if !checkOut.After(checkIn) {
		return domain.CheckResponse{}, domain.ErrInvalidDates
	}

	var excludeID snowflake.ID
	if strings.TrimSpace(req.ExcludeReservationID) != "" {
		excludeID, err = snowflake.ParseString(strings.TrimSpace(req.ExcludeReservationID))
		if err != nil || excludeID == 0 {
			return domain.CheckResponse{}, domain.ErrInvalidExcludeID
		}
	}

	conflicts, err := s.reservationRepo.FindConflicts(ctx, s.db, resourceIDs, checkIn, checkOut, excludeID)
	if err != nil {
		return domain.CheckResponse{}, err
	}

	s.metrics.AvailabilityQueries.Inc()
	if conflicts == nil {
		conflicts = []reservationdomain.ConflictSummary{}
	}
	return domain.CheckResponse{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
