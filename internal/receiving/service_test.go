package receiving

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/harborview/procurestock-backend/internal/inventory"
	"github.com/harborview/procurestock-backend/internal/purchasing"
	"github.com/harborview/procurestock-backend/pkg/config"
	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/enums"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

type stubTxRunner struct {
	err error
}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(nil)
}

type stubOrdersRepo struct {
	order         *models.PurchaseOrder
	receiptLines  []models.GoodsReceiptLine
	updatedStatus enums.PurchaseOrderStatus
	updatedBy     uuid.UUID
	statusUpdates int
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) purchasing.Repository { return s }

func (s *stubOrdersRepo) FindOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*models.PurchaseOrder, error) {
	if s.order == nil || s.order.OrganizationID != organizationID || s.order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrdersRepo) FindOrderForUpdate(ctx context.Context, organizationID, orderID uuid.UUID) (*models.PurchaseOrder, error) {
	return s.FindOrder(ctx, organizationID, orderID)
}

func (s *stubOrdersRepo) ListOrders(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters purchasing.OrderFilters) ([]models.PurchaseOrder, string, error) {
	panic("not implemented")
}

func (s *stubOrdersRepo) FindReceiptLinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.GoodsReceiptLine, error) {
	return s.receiptLines, nil
}

func (s *stubOrdersRepo) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.PurchaseOrderStatus, updatedBy uuid.UUID) error {
	s.updatedStatus = status
	s.updatedBy = updatedBy
	s.statusUpdates++
	return nil
}

type stubReceiptsRepo struct {
	created   *models.GoodsReceipt
	createErr error
}

func (s *stubReceiptsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubReceiptsRepo) CreateReceipt(ctx context.Context, receipt *models.GoodsReceipt) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = receipt
	return nil
}

func (s *stubReceiptsRepo) FindReceipt(ctx context.Context, organizationID, receiptID uuid.UUID) (*models.GoodsReceipt, error) {
	if s.created == nil || s.created.ID != receiptID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.created, nil
}

func (s *stubReceiptsRepo) ListReceipts(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters ReceiptFilters) ([]models.GoodsReceipt, string, error) {
	if s.created == nil {
		return nil, "", nil
	}
	return []models.GoodsReceipt{*s.created}, "", nil
}

type stubLedger struct {
	applied  *inventory.ReceiptApplication
	applyErr error
}

func (s *stubLedger) ApplyReceipt(ctx context.Context, tx *gorm.DB, input inventory.ReceiptApplication) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	s.applied = &input
	return nil
}

func newTestService(t *testing.T, orders *stubOrdersRepo, receipts *stubReceiptsRepo, ledger *stubLedger) Service {
	t.Helper()
	svc, err := NewService(receipts, orders, ledger, &stubTxRunner{}, config.ReceivingConfig{ReceiptPrefix: "GR"})
	require.NoError(t, err)
	return svc
}

func approvedOrderWithLine(orgID uuid.UUID, qty int) (*models.PurchaseOrder, models.PurchaseOrderLine) {
	line := models.PurchaseOrderLine{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString("2.50"),
	}
	order := &models.PurchaseOrder{
		ID:             uuid.New(),
		OrganizationID: orgID,
		OrderNumber:    "PO-1001",
		Status:         enums.PurchaseOrderStatusApproved,
		Lines:          []models.PurchaseOrderLine{line},
	}
	line.PurchaseOrderID = order.ID
	order.Lines[0].PurchaseOrderID = order.ID
	return order, order.Lines[0]
}

func TestReceiveGoodsPartialReceipt(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 10)
	orders := &stubOrdersRepo{order: order}
	receipts := &stubReceiptsRepo{}
	ledger := &stubLedger{}
	svc := newTestService(t, orders, receipts, ledger)

	locationID := uuid.New()
	actor := uuid.New()
	detail, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     actor,
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 4, LocationID: &locationID},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.NotEmpty(t, detail.ReceiptNumber)
	assert.Contains(t, detail.ReceiptNumber, "GR-")
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, 4, detail.Lines[0].Quantity)
	assert.Equal(t, line.ProductID, detail.Lines[0].ProductID)

	// ledger got the unit cost from the order line
	require.NotNil(t, ledger.applied)
	require.Len(t, ledger.applied.Lines, 1)
	assert.True(t, ledger.applied.Lines[0].UnitCost.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, actor, ledger.applied.ReceivedBy)

	// 4 of 10 received: order moves to partially_received
	assert.Equal(t, 1, orders.statusUpdates)
	assert.Equal(t, enums.PurchaseOrderStatusPartiallyReceived, orders.updatedStatus)
	assert.Equal(t, actor, orders.updatedBy)
}

func TestReceiveGoodsFullReceiptDerivesFullyReceived(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 5)
	orders := &stubOrdersRepo{order: order}
	svc := newTestService(t, orders, &stubReceiptsRepo{}, &stubLedger{})

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 5, LocationID: &locationID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusFullyReceived, orders.updatedStatus)
}

func TestReceiveGoodsOrderNotFound(t *testing.T) {
	svc := newTestService(t, &stubOrdersRepo{}, &stubReceiptsRepo{}, &stubLedger{})

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: uuid.New(),
		OrderID:        uuid.New(),
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: uuid.New(), Quantity: 1, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestReceiveGoodsCrossTenantIsNotFound(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 5)
	svc := newTestService(t, &stubOrdersRepo{order: order}, &stubReceiptsRepo{}, &stubLedger{})

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: uuid.New(), // different tenant
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 1, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestReceiveGoodsValidationFailureRollsBack(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 3)
	orders := &stubOrdersRepo{order: order}
	receipts := &stubReceiptsRepo{}
	ledger := &stubLedger{}
	svc := newTestService(t, orders, receipts, ledger)

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 99, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Nil(t, receipts.created, "nothing persisted on validation failure")
	assert.Nil(t, ledger.applied, "ledger untouched on validation failure")
	assert.Zero(t, orders.statusUpdates)
}

func TestReceiveGoodsAgainstExistingReceipts(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 10)
	order.Status = enums.PurchaseOrderStatusPartiallyReceived
	orders := &stubOrdersRepo{
		order: order,
		receiptLines: []models.GoodsReceiptLine{
			{ID: uuid.New(), PurchaseOrderLineID: line.ID, Quantity: 7},
		},
	}
	svc := newTestService(t, orders, &stubReceiptsRepo{}, &stubLedger{})

	locationID := uuid.New()

	// 7 already received, only 3 remain
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 4, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	// receiving the exact remainder completes the order
	_, err = svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 3, LocationID: &locationID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusFullyReceived, orders.updatedStatus)
}

func TestReceiveGoodsDuplicateLinesRejectedBeforeAnyWrite(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 4)
	orders := &stubOrdersRepo{order: order}
	receipts := &stubReceiptsRepo{}
	ledger := &stubLedger{}
	svc := newTestService(t, orders, receipts, ledger)

	// Each line alone fits the remaining 4; together they would sum to 6.
	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 3, LocationID: &locationID},
			{PurchaseOrderLineID: line.ID, Quantity: 3, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code(), "correctable input, not a data fault")

	details, ok := pkgerrors.As(err).Details().(ValidationDetails)
	require.True(t, ok)
	require.Len(t, details.LineErrors, 1)
	assert.Equal(t, ruleDuplicateLine, details.LineErrors[0].Code)

	assert.Nil(t, receipts.created, "nothing persisted")
	assert.Nil(t, ledger.applied, "ledger untouched")
	assert.Zero(t, orders.statusUpdates)
}

func TestReceiveGoodsFutureDateRejected(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 4)
	orders := &stubOrdersRepo{order: order}
	svc := newTestService(t, orders, &stubReceiptsRepo{}, &stubLedger{})

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC().Add(72 * time.Hour),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 1, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestReceiveGoodsCorruptHistorySurfacesInconsistency(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 5)
	orders := &stubOrdersRepo{
		order: order,
		receiptLines: []models.GoodsReceiptLine{
			{ID: uuid.New(), PurchaseOrderLineID: line.ID, Quantity: 9},
		},
	}
	svc := newTestService(t, orders, &stubReceiptsRepo{}, &stubLedger{})

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 1, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInconsistency, pkgerrors.As(err).Code())
}

func TestReceiveGoodsLedgerFailureAborts(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 5)
	orders := &stubOrdersRepo{order: order}
	ledger := &stubLedger{applyErr: pkgerrors.New(pkgerrors.CodeDependency, "ledger write failed")}
	svc := newTestService(t, orders, &stubReceiptsRepo{}, ledger)

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 1, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
	assert.Zero(t, orders.statusUpdates)
}

func TestReceiveGoodsLockRaceMapsToContention(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 5)
	svc, err := NewService(
		&stubReceiptsRepo{},
		&stubOrdersRepo{order: order},
		&stubLedger{},
		&stubTxRunner{err: &pgconn.PgError{Code: "40001", Message: "could not serialize access"}},
		config.ReceivingConfig{ReceiptPrefix: "GR"},
	)
	require.NoError(t, err)

	locationID := uuid.New()
	_, err = svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 1, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeContention, pkgerrors.As(err).Code())
	assert.True(t, pkgerrors.MetadataFor(pkgerrors.As(err).Code()).Retryable, "lock races are retryable")
}

func TestReceiveGoodsReceiptNumberCollisionIsRetryable(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 5)
	receipts := &stubReceiptsRepo{
		createErr: &pgconn.PgError{Code: "23505", ConstraintName: "goods_receipts_org_number_key"},
	}
	svc := newTestService(t, &stubOrdersRepo{order: order}, receipts, &stubLedger{})

	locationID := uuid.New()
	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: orgID,
		OrderID:        order.ID,
		ReceivedBy:     uuid.New(),
		ReceiptDate:    time.Now().UTC(),
		Lines: []LineInput{
			{PurchaseOrderLineID: line.ID, Quantity: 1, LocationID: &locationID},
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeContention, pkgerrors.As(err).Code())
}

func TestReceiveGoodsMissingIdentity(t *testing.T) {
	svc := newTestService(t, &stubOrdersRepo{}, &stubReceiptsRepo{}, &stubLedger{})

	_, err := svc.ReceiveGoods(context.Background(), ReceiveGoodsInput{
		OrganizationID: uuid.New(),
		OrderID:        uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestReconcileOrderReport(t *testing.T) {
	orgID := uuid.New()
	order, line := approvedOrderWithLine(orgID, 10)
	orders := &stubOrdersRepo{
		order: order,
		receiptLines: []models.GoodsReceiptLine{
			{ID: uuid.New(), PurchaseOrderLineID: line.ID, Quantity: 6},
		},
	}
	svc := newTestService(t, orders, &stubReceiptsRepo{}, &stubLedger{})

	report, err := svc.ReconcileOrder(context.Background(), orgID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, report.OrderID)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, 10, report.Lines[0].Ordered)
	assert.Equal(t, 6, report.Lines[0].Received)
	assert.Equal(t, 4, report.Lines[0].Remaining)
}

func TestGenerateReceiptNumber(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 45, 123456000, time.UTC)

	number := GenerateReceiptNumber("GR", now)
	assert.Equal(t, "GR-20260301-123456", number)

	fallback := GenerateReceiptNumber("", now)
	assert.Equal(t, "GR-20260301-123456", fallback)
}
