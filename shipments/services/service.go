package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shipment-service/shipments/models"
)

// Store is the persistence the service needs. repositories.Repository
// implements it.
type Store interface {
	Insert(ctx context.Context, shipment *models.Shipment) error
	Get(ctx context.Context, id string) (*models.Shipment, error)
	Update(ctx context.Context, shipment *models.Shipment) error
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	Query(ctx context.Context, q models.ListQuery) ([]models.Shipment, int64, error)
}

type Option func(*ShipmentService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ShipmentService) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *ShipmentService) {
		s.newID = newID
	}
}

type ShipmentService struct {
	logger *zap.Logger
	store  Store
	now    func() time.Time
	newID  func() string
}

func NewShipmentService(logger *zap.Logger, store Store, opts ...Option) *ShipmentService {
	s := &ShipmentService{
		logger: logger,
		store:  store,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ShipmentService) List(ctx context.Context, q models.ListQuery) (models.Page, error) {
	q, err := q.Normalize()
	if err != nil {
		return models.Page{}, err
	}

	shipments, total, err := s.store.Query(ctx, q)
	if err != nil {
		return models.Page{}, err
	}
	return models.NewPage(shipments, total, q), nil
}

func (s *ShipmentService) Get(ctx context.Context, id string) (*models.Shipment, error) {
	return s.store.Get(ctx, id)
}

func (s *ShipmentService) Create(ctx context.Context, in models.ShipmentInput) (*models.Shipment, error) {
	if err := in.ValidateCreate(); err != nil {
		return nil, err
	}
	if err := in.TrackingData.Check(); err != nil {
		return nil, err
	}

	now := s.timestamp()
	shipment := &models.Shipment{
		ID:        s.newID(),
		Status:    models.DefaultStatus,
		Rate:      models.NewRate(decimal.Zero),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.ApplyTo(shipment)

	if err := s.store.Insert(ctx, shipment); err != nil {
		return nil, err
	}

	s.logger.Info("Shipment created",
		zap.String("id", shipment.ID),
		zap.String("status", shipment.Status),
	)
	return shipment, nil
}

// Update merges the present fields of in into the stored shipment. Absent
// fields keep their stored value.
func (s *ShipmentService) Update(ctx context.Context, id string, in models.ShipmentInput) (*models.Shipment, error) {
	if err := in.ValidatePatch(); err != nil {
		return nil, err
	}
	if err := in.TrackingData.Check(); err != nil {
		return nil, err
	}

	shipment, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in.ApplyTo(shipment)
	shipment.UpdatedAt = s.nextUpdate(shipment.UpdatedAt)

	if err := s.store.Update(ctx, shipment); err != nil {
		return nil, err
	}

	s.logger.Info("Shipment updated",
		zap.String("id", shipment.ID),
		zap.String("status", shipment.Status),
	)
	return shipment, nil
}

func (s *ShipmentService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("Shipment deleted", zap.String("id", id))
	}
	return deleted, nil
}

// timestamp truncates to microseconds, the precision PostgreSQL keeps.
func (s *ShipmentService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// nextUpdate never returns a time at or before prev.
func (s *ShipmentService) nextUpdate(prev time.Time) time.Time {
	now := s.timestamp()
	if !now.After(prev) {
		now = prev.UTC().Add(time.Microsecond)
	}
	return now
}
