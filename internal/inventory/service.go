package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/enums"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

// StockRecord is the on-hand view returned by the stock list.
type StockRecord struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	LocationID     uuid.UUID `json:"location_id"`
	CurrentStock   int       `json:"current_stock"`
	CommittedStock int       `json:"committed_stock"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StockList wraps the paginated records plus the next page cursor.
type StockList struct {
	Records    []StockRecord `json:"records"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// LedgerEntry is one append-only transaction in API form.
type LedgerEntry struct {
	ID             uuid.UUID                      `json:"id"`
	ProductID      uuid.UUID                      `json:"product_id"`
	LocationID     uuid.UUID                      `json:"location_id"`
	Type           enums.InventoryTransactionType `json:"type"`
	Quantity       int                            `json:"quantity"`
	UnitCost       decimal.Decimal                `json:"unit_cost"`
	TotalCost      decimal.Decimal                `json:"total_cost"`
	GoodsReceiptID *uuid.UUID                     `json:"goods_receipt_id,omitempty"`
	CreatedAt      time.Time                      `json:"created_at"`
}

// LedgerList wraps the paginated entries plus the next page cursor.
type LedgerList struct {
	Entries    []LedgerEntry `json:"entries"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// Service exposes the read surface over stock records and the ledger.
type Service interface {
	ListStock(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters RecordFilters) (*StockList, error)
	ListLedger(ctx context.Context, organizationID uuid.UUID, params pagination.Params, productID *uuid.UUID) (*LedgerList, error)
}

type service struct {
	repo Repository
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListStock(ctx context.Context, organizationID uuid.UUID, params pagination.Params, filters RecordFilters) (*StockList, error) {
	if organizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}

	records, nextCursor, err := s.repo.ListRecords(ctx, organizationID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory records")
	}

	out := make([]StockRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, toStockRecord(rec))
	}
	return &StockList{Records: out, NextCursor: nextCursor}, nil
}

func (s *service) ListLedger(ctx context.Context, organizationID uuid.UUID, params pagination.Params, productID *uuid.UUID) (*LedgerList, error) {
	if organizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "organization context missing")
	}

	entries, nextCursor, err := s.repo.ListTransactions(ctx, organizationID, params, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory transactions")
	}

	out := make([]LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toLedgerEntry(entry))
	}
	return &LedgerList{Entries: out, NextCursor: nextCursor}, nil
}

func toStockRecord(rec models.InventoryRecord) StockRecord {
	return StockRecord{
		ID:             rec.ID,
		ProductID:      rec.ProductID,
		LocationID:     rec.LocationID,
		CurrentStock:   rec.CurrentStock,
		CommittedStock: rec.CommittedStock,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func toLedgerEntry(entry models.InventoryTransaction) LedgerEntry {
	return LedgerEntry{
		ID:             entry.ID,
		ProductID:      entry.ProductID,
		LocationID:     entry.LocationID,
		Type:           entry.Type,
		Quantity:       entry.Quantity,
		UnitCost:       entry.UnitCost,
		TotalCost:      entry.TotalCost,
		GoodsReceiptID: entry.GoodsReceiptID,
		CreatedAt:      entry.CreatedAt,
	}
}
