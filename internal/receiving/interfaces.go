package receiving

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

// Repository defines persistence operations for goods receipt tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateReceipt(ctx context.Context, receipt *models.GoodsReceipt) error
	FindReceipt(ctx context.Context, organizationID, receiptID uuid.UUID) (*models.GoodsReceipt, error)
	ListReceipts(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters ReceiptFilters) ([]models.GoodsReceipt, string, error)
}
