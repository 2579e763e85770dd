package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"shipment-service/shipments/models"
)

const uniqueViolation = "23505"

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or alters the shipments table to match the model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Shipment{})
}

func (r *Repository) Insert(ctx context.Context, shipment *models.Shipment) error {
	err := r.db.WithContext(ctx).Create(shipment).Error
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: %s", models.ErrConflict, shipment.ID)
	}
	return storageError("insert shipment", err)
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&shipment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, storageError("get shipment", err)
	}
	return &shipment, nil
}

// Update overwrites every stored column of an existing shipment except its
// id and creation time.
func (r *Repository) Update(ctx context.Context, shipment *models.Shipment) error {
	res := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ?", shipment.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(shipment)
	if res.Error != nil {
		return storageError("update shipment", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Shipment{})
	if res.Error != nil {
		return false, storageError("delete shipment", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Shipment{}).Count(&n).Error
	return n, storageError("count shipments", err)
}

// Query returns one page of the shipments matching q together with the
// total number of matches. q must already be normalized.
func (r *Repository) Query(ctx context.Context, q models.ListQuery) ([]models.Shipment, int64, error) {
	column, ok := models.SortColumn(q.SortBy)
	if !ok {
		return nil, 0, models.NewValidationError("sortBy", "is not a sortable field")
	}

	filtered := r.filter(r.db.WithContext(ctx).Model(&models.Shipment{}), q)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, storageError("count matching shipments", err)
	}

	direction := "DESC"
	if q.SortOrder == models.SortAsc {
		direction = "ASC"
	}

	shipments := make([]models.Shipment, 0, q.Size)
	err := filtered.Session(&gorm.Session{}).
		Order(column + " " + direction).
		Order("id ASC").
		Offset(q.Offset()).
		Limit(q.Size).
		Find(&shipments).Error
	if err != nil {
		return nil, 0, storageError("query shipments", err)
	}
	return shipments, total, nil
}

// CountByStatus groups all shipments by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, storageError("count shipments by status", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *Repository) filter(tx *gorm.DB, q models.ListQuery) *gorm.DB {
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.ShipperName != "" {
		tx = tx.Where(`LOWER(shipper_name) LIKE ? ESCAPE '\'`, containsPattern(q.ShipperName))
	}
	if q.CarrierName != "" {
		tx = tx.Where(`LOWER(carrier_name) LIKE ? ESCAPE '\'`, containsPattern(q.CarrierName))
	}
	return tx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", models.ErrStorage, op, err)
}
