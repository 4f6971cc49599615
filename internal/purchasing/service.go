package purchasing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

// Service exposes the read surface over purchase orders.
type Service interface {
	ListOrders(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error)
	GetOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*OrderDetail, error)
}

type service struct {
	repo Repository
}

// NewService builds a purchase order service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchasing repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListOrders(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if organizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}

	orders, nextCursor, err := s.repo.ListOrders(ctx, organizationID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase orders")
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, toOrderSummary(order))
	}
	return &OrderList{Orders: summaries, NextCursor: nextCursor}, nil
}

func (s *service) GetOrder(ctx context.Context, organizationID, orderID uuid.UUID) (*OrderDetail, error) {
	if organizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindOrder(ctx, organizationID, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}

	receiptLines, err := s.repo.FindReceiptLinesByOrder(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load receipt lines")
	}

	report, err := ReconcileOrder(order.Lines, receiptLines)
	if err != nil {
		return nil, err
	}
	progressByLine := make(map[uuid.UUID]LineProgress, len(report))
	for _, p := range report {
		progressByLine[p.LineID] = p
	}

	detail := &OrderDetail{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		VendorID:     order.VendorID,
		OrderDate:    order.OrderDate,
		ExpectedDate: order.ExpectedDate,
		Status:       order.Status,
		Currency:     order.Currency,
		Totals:       ComputeTotals(order.Lines, order.ShippingCost),
		Notes:        order.Notes,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}

	detail.Lines = make([]OrderLineDetail, 0, len(order.Lines))
	for _, line := range order.Lines {
		progress := progressByLine[line.ID]
		detail.Lines = append(detail.Lines, OrderLineDetail{
			ID:             line.ID,
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			TaxRate:        line.TaxRate,
			DiscountAmount: line.DiscountAmount,
			LineTotal:      LineNet(line),
			Received:       progress.Received,
			Remaining:      progress.Remaining,
		})
	}
	return detail, nil
}
