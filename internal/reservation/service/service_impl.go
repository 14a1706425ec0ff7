package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	agentdomain "github.com/smallbiznis/lodgera/internal/agent/domain"
	commissiondomain "github.com/smallbiznis/lodgera/internal/commission/domain"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/config"
	customerdomain "github.com/smallbiznis/lodgera/internal/customer/domain"
	ledgerdomain "github.com/smallbiznis/lodgera/internal/ledger/domain"
	obsmetrics "github.com/smallbiznis/lodgera/internal/observability/metrics"
	"github.com/smallbiznis/lodgera/internal/reservation/domain"
	resourcedomain "github.com/smallbiznis/lodgera/internal/resource/domain"
	"github.com/smallbiznis/lodgera/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Booking config.BookingConfig
	Metrics *obsmetrics.Metrics

	Repo          domain.Repository
	ResourceRepo  resourcedomain.Repository
	CustomerSvc   customerdomain.Service
	AgentRepo     agentdomain.Repository
	CommissionSvc commissiondomain.Service
	LedgerSvc     ledgerdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	booking config.BookingConfig
	metrics *obsmetrics.Metrics

	repo          domain.Repository
	resourceRepo  resourcedomain.Repository
	customerSvc   customerdomain.Service
	agentRepo     agentdomain.Repository
	commissionSvc commissiondomain.Service
	ledgerSvc     ledgerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("reservation.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		booking:       p.Booking,
		metrics:       p.Metrics,
		repo:          p.Repo,
		resourceRepo:  p.ResourceRepo,
		customerSvc:   p.CustomerSvc,
		agentRepo:     p.AgentRepo,
		commissionSvc: p.CommissionSvc,
		ledgerSvc:     p.LedgerSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateReservationRequest) (domain.Reservation, error) {
	guestName := strings.TrimSpace(req.GuestName)
	if guestName == "" {
		return domain.Reservation{}, domain.ErrInvalidGuestName
	}
	if req.Guests <= 0 {
		return domain.Reservation{}, domain.ErrInvalidGuests
	}

	resourceIDs, err := s.parseResourceIDs(req.ResourceIDs)
	if err != nil {
		return domain.Reservation{}, err
	}

	checkIn, checkOut, err := s.parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.Reservation{}, err
	}

	resources, err := s.loadResources(ctx, resourceIDs)
	if err != nil {
		return domain.Reservation{}, err
	}

	capacity := 0
	for _, resource := range resources {
		capacity += resource.MaxGuests
	}
	if req.Guests > capacity {
		return domain.Reservation{}, domain.ErrCapacityExceeded
	}

	nights := domain.Nights(checkIn, checkOut)
	currency := resources[0].Currency
	var total int64
	for _, resource := range resources {
		total += resource.NightlyAmount * int64(nights)
	}

	guest, err := s.customerSvc.ResolveGuest(ctx, guestName, req.GuestEmail)
	if err != nil {
		return domain.Reservation{}, err
	}

	var agentID *snowflake.ID
	if strings.TrimSpace(req.AgentID) != "" {
		id, err := s.resolveAgent(ctx, req.AgentID)
		if err != nil {
			return domain.Reservation{}, err
		}
		agentID = &id
	}

	now := s.clock.Now()
	reservation := domain.Reservation{
		ID:           s.genID.Generate(),
		Code:         uuid.NewString(),
		CustomerID:   guest.ID,
		AgentID:      agentID,
		ResourceID:   resources[0].ID,
		GuestName:    guest.Name,
		ResourceName: resources[0].Name,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Nights:       nights,
		Guests:       req.Guests,
		TotalAmount:  total,
		Currency:     currency,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	items := make([]domain.ReservationItem, 0, len(resources))
	for _, resource := range resources {
		items = append(items, domain.ReservationItem{
			ID:            s.genID.Generate(),
			ReservationID: reservation.ID,
			ResourceID:    resource.ID,
			ResourceName:  resource.Name,
			NightlyAmount: resource.NightlyAmount,
			Amount:        resource.NightlyAmount * int64(nights),
			Currency:      resource.Currency,
			CreatedAt:     now,
		})
	}

	// The advisory availability check is a race-prone hint. The overlap query
	// is re-run here inside the insert transaction so two concurrent requests
	// for the same dates cannot both commit: the loser sees the winner's
	// now-committed row and aborts with the conflict summaries.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflicts, err := s.repo.FindConflicts(ctx, tx, resourceIDs, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.ConflictError{Conflicts: conflicts}
		}
		if err := s.repo.Insert(ctx, tx, &reservation); err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
	if err != nil {
		if conflictErr, ok := asConflict(err); ok {
			s.metrics.ReservationConflicts.Inc()
			return domain.Reservation{}, conflictErr
		}
		return domain.Reservation{}, err
	}

	s.metrics.ReservationsCreated.Inc()
	s.log.Info("reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.Int64("total_amount", total),
		zap.Int("nights", nights),
	)

	reservation.Items = items
	return reservation, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Reservation, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Reservation{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Reservation{}, err
	}
	if item == nil {
		return domain.Reservation{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReservationsRequest) (domain.ListReservationsResponse, error) {
	filter := domain.ListFilter{}
	if strings.TrimSpace(req.Status) != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			return domain.ListReservationsResponse{}, err
		}
		filter.Status = status
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListReservationsResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(reservation *domain.Reservation) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        reservation.ID.String(),
			CreatedAt: reservation.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	reservations := make([]domain.Reservation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		reservations = append(reservations, *item)
	}

	resp := domain.ListReservationsResponse{Reservations: reservations}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) parseResourceIDs(raw []string) ([]snowflake.ID, error) {
	if len(raw) == 0 {
		return nil, domain.ErrInvalidResourceIDs
	}
	if len(raw) > s.booking.MaxResourcesPerReservation {
		return nil, domain.ErrTooManyResources
	}

	seen := make(map[snowflake.ID]struct{}, len(raw))
	ids := make([]snowflake.ID, 0, len(raw))
	for _, value := range raw {
		id, err := snowflake.ParseString(strings.TrimSpace(value))
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidResourceIDs
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Service) parseRange(rawIn, rawOut string) (time.Time, time.Time, error) {
	checkIn, err := domain.ParseDate(rawIn)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDates
	}
	checkOut, err := domain.ParseDate(rawOut)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidDates
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDates
	}

	today := domain.NormalizeDay(s.clock.Now())
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, domain.ErrCheckInPast
	}
	if checkIn.After(today.AddDate(0, 0, s.booking.MaxLookaheadDays)) {
		return time.Time{}, time.Time{}, domain.ErrCheckInTooFar
	}
	return checkIn, checkOut, nil
}

func (s *Service) loadResources(ctx context.Context, ids []snowflake.ID) ([]*resourcedomain.Resource, error) {
	resources, err := s.resourceRepo.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	if len(resources) != len(ids) {
		return nil, resourcedomain.ErrNotFound
	}

	byID := make(map[snowflake.ID]*resourcedomain.Resource, len(resources))
	for _, resource := range resources {
		if !resource.Active {
			return nil, domain.ErrResourceInactive
		}
		byID[resource.ID] = resource
	}

	// Preserve request order so the first resource stays the primary.
	ordered := make([]*resourcedomain.Resource, 0, len(ids))
	for _, id := range ids {
		resource, ok := byID[id]
		if !ok {
			return nil, resourcedomain.ErrNotFound
		}
		ordered = append(ordered, resource)
	}
	return ordered, nil
}

func (s *Service) resolveAgent(ctx context.Context, raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, agentdomain.ErrInvalidID
	}
	agent, err := s.agentRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return 0, err
	}
	if agent == nil {
		return 0, agentdomain.ErrNotFound
	}
	if !agent.Active {
		return 0, agentdomain.ErrInactive
	}
	return agent.ID, nil
}

func asConflict(err error) (*domain.ConflictError, bool) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		return conflictErr, true
	}
	return nil, false
}
