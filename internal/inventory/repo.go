package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

// Repository exposes read helpers over the stock tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListRecords(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters RecordFilters) ([]models.InventoryRecord, string, error)
	ListTransactions(ctx context.Context, organizationID uuid.UUID, params pagination.Params, productID *uuid.UUID) ([]models.InventoryTransaction, string, error)
}

// RecordFilters describe the inputs supported by the stock list.
type RecordFilters struct {
	ProductID  *uuid.UUID
	LocationID *uuid.UUID
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListRecords(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters RecordFilters) ([]models.InventoryRecord, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("organization_id = ?", organizationID)
	if filters.ProductID != nil {
		query = query.Where("product_id = ?", *filters.ProductID)
	}
	if filters.LocationID != nil {
		query = query.Where("location_id = ?", *filters.LocationID)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var records []models.InventoryRecord
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, "", err
	}

	if len(records) > normalized {
		next := records[normalized]
		records = records[:normalized]
		return records, pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}), nil
	}
	return records, "", nil
}

func (r *repository) ListTransactions(ctx context.Context, organizationID uuid.UUID, params pagination.Params, productID *uuid.UUID) ([]models.InventoryTransaction, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.InventoryTransaction{}).
		Where("organization_id = ?", organizationID)
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var entries []models.InventoryTransaction
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, "", err
	}

	if len(entries) > normalized {
		next := entries[normalized]
		entries = entries[:normalized]
		return entries, pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}), nil
	}
	return entries, "", nil
}
