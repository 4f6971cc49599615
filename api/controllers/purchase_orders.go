package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/api/responses"
	"github.com/harborview/procurestock-backend/internal/purchasing"
	"github.com/harborview/procurestock-backend/internal/receiving"
	"github.com/harborview/procurestock-backend/pkg/enums"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
	"github.com/harborview/procurestock-backend/pkg/logger"
)

// ListPurchaseOrders returns the tenant-scoped paginated order list.
func ListPurchaseOrders(svc purchasing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := currentOrganization(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := orderFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.ListOrders(r.Context(), orgID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// PurchaseOrderDetail returns one order with lines, derived totals, and
// per-line receiving progress.
func PurchaseOrderDetail(svc purchasing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := currentOrganization(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		resp, err := svc.GetOrder(r.Context(), orgID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// PurchaseOrderReconciliation returns the read-only per-line fulfillment view.
func PurchaseOrderReconciliation(svc receiving.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := currentOrganization(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		resp, err := svc.ReconcileOrder(r.Context(), orgID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func orderFilters(r *http.Request) (purchasing.OrderFilters, error) {
	filters := purchasing.OrderFilters{}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParsePurchaseOrderStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filters.Status = &status
	}

	vendorID, err := queryUUID(r, "vendor_id")
	if err != nil {
		return filters, err
	}
	filters.VendorID = vendorID

	if raw := strings.TrimSpace(r.URL.Query().Get("date_from")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date_from")
		}
		filters.DateFrom = &t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("date_to")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date_to")
		}
		filters.DateTo = &t
	}

	return filters, nil
}
