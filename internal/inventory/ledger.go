package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/enums"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
)

// ReceiptLine is one accepted receipt line to post to the stock ledger.
type ReceiptLine struct {
	ProductID  uuid.UUID
	LocationID uuid.UUID
	Quantity   int
	UnitCost   decimal.Decimal
}

// ReceiptApplication carries everything needed to post one goods receipt.
type ReceiptApplication struct {
	OrganizationID uuid.UUID
	GoodsReceiptID uuid.UUID
	ReceivedBy     uuid.UUID
	Lines          []ReceiptLine
}

// Applier posts accepted receipts to the stock ledger inside the caller's
// transaction.
type Applier interface {
	ApplyReceipt(ctx context.Context, tx *gorm.DB, input ReceiptApplication) error
}

type applierImpl struct{}

// NewApplier exposes the default stock ledger implementation.
func NewApplier() Applier {
	return applierImpl{}
}

// ApplyReceipt upserts the on-hand record per (product, location) and appends
// one immutable ledger transaction per line. Increments are single UPDATE
// statements so concurrent transactions against different orders never read
// stale counts; the record row is created lazily on the first receipt into a
// location. The ledger is strictly additive: nothing here updates or deletes
// existing transactions.
func (applierImpl) ApplyReceipt(ctx context.Context, tx *gorm.DB, input ReceiptApplication) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock ledger update")
	}
	if input.OrganizationID == uuid.Nil || input.GoodsReceiptID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "organization and receipt ids required")
	}

	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "ledger quantity must be positive")
		}

		res := tx.WithContext(ctx).Exec(`
			UPDATE inventory_records
			SET current_stock = current_stock + ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE organization_id = ? AND product_id = ? AND location_id = ?
		`, line.Quantity, input.OrganizationID, line.ProductID, line.LocationID)
		if res.Error != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "increment inventory record")
		}

		if res.RowsAffected == 0 {
			record := models.InventoryRecord{
				ID:             uuid.New(),
				OrganizationID: input.OrganizationID,
				ProductID:      line.ProductID,
				LocationID:     line.LocationID,
				CurrentStock:   line.Quantity,
			}
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory record")
			}
		}

		receiptID := input.GoodsReceiptID
		entry := models.InventoryTransaction{
			ID:             uuid.New(),
			OrganizationID: input.OrganizationID,
			ProductID:      line.ProductID,
			LocationID:     line.LocationID,
			Type:           enums.InventoryTransactionTypeReceipt,
			Quantity:       line.Quantity,
			UnitCost:       line.UnitCost,
			TotalCost:      line.UnitCost.Mul(decimal.NewFromInt(int64(line.Quantity))),
			GoodsReceiptID: &receiptID,
			CreatedBy:      input.ReceivedBy,
		}
		if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append inventory transaction")
		}
	}
	return nil
}
