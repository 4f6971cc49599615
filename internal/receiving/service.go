package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborview/procurestock-backend/internal/inventory"
	"github.com/harborview/procurestock-backend/internal/purchasing"
	"github.com/harborview/procurestock-backend/pkg/config"
	"github.com/harborview/procurestock-backend/pkg/db"
	"github.com/harborview/procurestock-backend/pkg/db/models"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes goods receipt recording and reconciliation queries.
type Service interface {
	ReceiveGoods(ctx context.Context, input ReceiveGoodsInput) (*ReceiptDetail, error)
	ReconcileOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*purchasing.ReconciliationReport, error)
	GetReceipt(ctx context.Context, organizationID, receiptID uuid.UUID) (*ReceiptDetail, error)
	ListReceipts(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters ReceiptFilters) (*ReceiptList, error)
}

type service struct {
	repo   Repository
	orders purchasing.Repository
	ledger inventory.Applier
	tx     txRunner
	cfg    config.ReceivingConfig
	now    func() time.Time
}

// NewService builds a receiving service with the required dependencies.
func NewService(repo Repository, orders purchasing.Repository, ledger inventory.Applier, tx txRunner, cfg config.ReceivingConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("receiving repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("purchasing repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger applier required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:   repo,
		orders: orders,
		ledger: ledger,
		tx:     tx,
		cfg:    cfg,
		now:    time.Now,
	}, nil
}

// ReceiveGoods records one goods receipt against a purchase order. Everything
// runs inside a single transaction: the order row is locked, the request is
// validated against the live reconciliation state, the receipt and its lines
// are persisted, the stock ledger is updated, and the order status is
// re-derived. Any failure rolls the whole unit back; lock timeouts and
// serialization failures come back as retryable contention.
func (s *service) ReceiveGoods(ctx context.Context, input ReceiveGoodsInput) (*ReceiptDetail, error) {
	if input.OrganizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}
	if input.ReceivedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var detail *ReceiptDetail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		repo := s.repo.WithTx(tx)

		order, err := orders.FindOrderForUpdate(ctx, input.OrganizationID, input.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
		}

		receiptLines, err := orders.FindReceiptLinesByOrder(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load receipt history")
		}

		report, err := purchasing.ReconcileOrder(order.Lines, receiptLines)
		if err != nil {
			return err
		}
		progress := make(map[uuid.UUID]purchasing.LineProgress, len(report))
		for _, p := range report {
			progress[p.LineID] = p
		}

		if err := ValidateReceipt(order, progress, input, s.now()); err != nil {
			return err
		}

		orderLines := make(map[uuid.UUID]models.PurchaseOrderLine, len(order.Lines))
		for _, line := range order.Lines {
			orderLines[line.ID] = line
		}

		receipt := &models.GoodsReceipt{
			ID:              uuid.New(),
			OrganizationID:  input.OrganizationID,
			ReceiptNumber:   GenerateReceiptNumber(s.cfg.ReceiptPrefix, s.now()),
			PurchaseOrderID: order.ID,
			ReceiptDate:     input.ReceiptDate,
			Notes:           input.Notes,
			ReceivedBy:      input.ReceivedBy,
		}
		application := inventory.ReceiptApplication{
			OrganizationID: input.OrganizationID,
			GoodsReceiptID: receipt.ID,
			ReceivedBy:     input.ReceivedBy,
		}
		for _, line := range input.Lines {
			if line.Quantity == 0 {
				continue
			}
			orderLine := orderLines[line.PurchaseOrderLineID]
			receipt.Lines = append(receipt.Lines, models.GoodsReceiptLine{
				ID:                  uuid.New(),
				PurchaseOrderLineID: line.PurchaseOrderLineID,
				ProductID:           orderLine.ProductID,
				LocationID:          *line.LocationID,
				Quantity:            line.Quantity,
			})
			application.Lines = append(application.Lines, inventory.ReceiptLine{
				ProductID:  orderLine.ProductID,
				LocationID: *line.LocationID,
				Quantity:   line.Quantity,
				UnitCost:   orderLine.UnitPrice,
			})
		}

		if err := repo.CreateReceipt(ctx, receipt); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeContention, err, "receipt number collision")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist goods receipt")
		}

		if err := s.ledger.ApplyReceipt(ctx, tx, application); err != nil {
			return err
		}

		updatedLines := append(receiptLines, receipt.Lines...)
		updatedReport, err := purchasing.ReconcileOrder(order.Lines, updatedLines)
		if err != nil {
			return err
		}
		newStatus := purchasing.DeriveStatus(order.Status, updatedReport)
		if newStatus != order.Status {
			if err := orders.UpdateOrderStatus(ctx, order.ID, newStatus, input.ReceivedBy); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
			}
		}

		detail = toReceiptDetail(receipt)
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		if db.IsContention(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeContention, err, "receipt transaction lost a lock race")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "receive goods transaction")
	}
	return detail, nil
}

// ReconcileOrder returns the read-only per-line fulfillment view of an order.
func (s *service) ReconcileOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*purchasing.ReconciliationReport, error) {
	if organizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.orders.FindOrder(ctx, organizationID, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}

	receiptLines, err := s.orders.FindReceiptLinesByOrder(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load receipt history")
	}

	report, err := purchasing.ReconcileOrder(order.Lines, receiptLines)
	if err != nil {
		return nil, err
	}
	return &purchasing.ReconciliationReport{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Lines:       report,
	}, nil
}

func (s *service) GetReceipt(ctx context.Context, organizationID, receiptID uuid.UUID) (*ReceiptDetail, error) {
	if organizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}
	if receiptID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receipt id required")
	}

	receipt, err := s.repo.FindReceipt(ctx, organizationID, receiptID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "goods receipt not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load goods receipt")
	}
	return toReceiptDetail(receipt), nil
}

func (s *service) ListReceipts(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters ReceiptFilters) (*ReceiptList, error) {
	if organizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}

	receipts, nextCursor, err := s.repo.ListReceipts(ctx, organizationID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list goods receipts")
	}

	summaries := make([]ReceiptSummary, 0, len(receipts))
	for _, receipt := range receipts {
		summaries = append(summaries, toReceiptSummary(receipt))
	}
	return &ReceiptList{Receipts: summaries, NextCursor: nextCursor}, nil
}
