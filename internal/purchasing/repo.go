package purchasing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/enums"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a purchase order repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ? AND organization_id = ?", orderID, organizationID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderForUpdate loads the order row under FOR UPDATE so concurrent
// receipts against the same order serialize on it. Must run inside a
// transaction; the lines ride along without their own lock since all writers
// go through the order row first.
func (r *repository) FindOrderForUpdate(ctx context.Context, organizationID, orderID uuid.UUID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND organization_id = ?", orderID, organizationID).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	var lines []models.PurchaseOrderLine
	err = r.db.WithContext(ctx).
		Where("purchase_order_id = ?", order.ID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters OrderFilters) ([]models.PurchaseOrder, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Preload("Lines").
		Where("organization_id = ?", organizationID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.VendorID != nil {
		query = query.Where("vendor_id = ?", *filters.VendorID)
	}
	if filters.DateFrom != nil {
		query = query.Where("order_date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("order_date <= ?", *filters.DateTo)
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, "", err
	}

	if len(orders) > normalized {
		next := orders[normalized]
		orders = orders[:normalized]
		nextCursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID})
		return orders, nextCursor, nil
	}
	return orders, "", nil
}

func (r *repository) FindReceiptLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.GoodsReceiptLine, error) {
	var lines []models.GoodsReceiptLine
	err := r.db.WithContext(ctx).
		Joins("JOIN goods_receipts ON goods_receipts.id = goods_receipt_lines.goods_receipt_id").
		Where("goods_receipts.purchase_order_id = ?", orderID).
		Order("goods_receipt_lines.created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.PurchaseOrderStatus, updatedBy uuid.UUID) error {
	updates := map[string]any{"status": status}
	if updatedBy != uuid.Nil {
		updates["updated_by"] = updatedBy
	}
	return r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}
