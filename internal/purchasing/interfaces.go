package purchasing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/enums"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

// Repository defines persistence operations for purchase order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*models.PurchaseOrder, error)
	FindOrderForUpdate(ctx context.Context, organizationID, orderID uuid.UUID) (*models.PurchaseOrder, error)
	ListOrders(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters OrderFilters) ([]models.PurchaseOrder, string, error)
	FindReceiptLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.GoodsReceiptLine, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.PurchaseOrderStatus, updatedBy uuid.UUID) error
}
