package receiving

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a goods receipt repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// CreateReceipt persists the header and its lines in one insert via the
// association.
func (r *repository) CreateReceipt(ctx context.Context, receipt *models.GoodsReceipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *repository) FindReceipt(ctx context.Context, organizationID, receiptID uuid.UUID) (*models.GoodsReceipt, error) {
	var receipt models.GoodsReceipt
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ? AND organization_id = ?", receiptID, organizationID).
		First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *repository) ListReceipts(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters ReceiptFilters) ([]models.GoodsReceipt, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.GoodsReceipt{}).
		Preload("Lines").
		Where("organization_id = ?", organizationID)
	if filters.PurchaseOrderID != nil {
		query = query.Where("purchase_order_id = ?", *filters.PurchaseOrderID)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var receipts []models.GoodsReceipt
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&receipts).Error; err != nil {
		return nil, "", err
	}

	if len(receipts) > normalized {
		next := receipts[normalized]
		receipts = receipts[:normalized]
		return receipts, pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}), nil
	}
	return receipts, "", nil
}
