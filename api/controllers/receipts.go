package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/api/responses"
	"github.com/harborview/procurestock-backend/api/validators"
	"github.com/harborview/procurestock-backend/internal/notifications"
	"github.com/harborview/procurestock-backend/internal/receiving"
	"github.com/harborview/procurestock-backend/pkg/enums"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
	"github.com/harborview/procurestock-backend/pkg/logger"
	"github.com/harborview/procurestock-backend/pkg/metrics"
)

const maxReceiptNotesLen = 2000

type createReceiptRequest struct {
	ReceiptDate time.Time             `json:"receipt_date"`
	Notes       *string               `json:"notes"`
	Lines       []receiving.LineInput `json:"lines"`
}

// CreateReceipt records a goods receipt against a purchase order. The domain
// validator owns the structural rules, so the request body is decoded
// leniently and handed over as-is.
func CreateReceipt(svc receiving.Service, notifier notifications.Service, m *metrics.ReceivingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := currentOrganization(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := currentUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		var req createReceiptRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Notes != nil {
			clean := validators.SanitizeString(*req.Notes, maxReceiptNotesLen)
			req.Notes = &clean
		}

		start := time.Now()
		receipt, err := svc.ReceiveGoods(r.Context(), receiving.ReceiveGoodsInput{
			OrganizationID: orgID,
			OrderID:        orderID,
			ReceivedBy:     userID,
			ReceiptDate:    req.ReceiptDate,
			Notes:          req.Notes,
			Lines:          req.Lines,
		})
		duration := time.Since(start)

		if err != nil {
			recordRejection(r, m, notifier, logg, orgID, orderID, err, duration)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.ObserveDuration("accepted", duration)
		m.IncAccepted(orgID.String())
		notify(r, notifier, logg, notifications.NotifyInput{
			OrganizationID: orgID,
			UserID:         &userID,
			Severity:       enums.NotificationSeveritySuccess,
			Title:          "Goods received",
			Message:        fmt.Sprintf("Receipt %s recorded against order %s", receipt.ReceiptNumber, orderID),
		})

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// ListReceipts returns the tenant-scoped receipt history.
func ListReceipts(svc receiving.Service, logg *logger.Logger) http.HandlerFunc {
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

		orderID, err := queryUUID(r, "purchase_order_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.ListReceipts(r.Context(), orgID, params, receiving.ReceiptFilters{PurchaseOrderID: orderID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// ReceiptDetail returns one goods receipt with its lines.
func ReceiptDetail(svc receiving.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := currentOrganization(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receiptID, err := uuid.Parse(chi.URLParam(r, "receiptId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid receipt id"))
			return
		}

		resp, err := svc.GetReceipt(r.Context(), orgID, receiptID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func recordRejection(r *http.Request, m *metrics.ReceivingMetrics, notifier notifications.Service, logg *logger.Logger, orgID, orderID uuid.UUID, err error, duration time.Duration) {
	code := pkgerrors.CodeInternal
	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
	}

	m.ObserveDuration("rejected", duration)
	m.IncRejected(string(code))
	if code == pkgerrors.CodeContention {
		m.IncLockConflict()
	}

	// Inconsistent stored data needs a human; surface it as a persisted alert.
	if code == pkgerrors.CodeInconsistency {
		notify(r, notifier, logg, notifications.NotifyInput{
			OrganizationID: orgID,
			Severity:       enums.NotificationSeverityError,
			Title:          "Order reconciliation inconsistency",
			Message:        fmt.Sprintf("Receipt rejected: order %s has received more than ordered", orderID),
		})
	}
}

// notify persists a notification without letting a sink failure affect the
// response already owed to the client.
func notify(r *http.Request, notifier notifications.Service, logg *logger.Logger, input notifications.NotifyInput) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(r.Context(), input); err != nil && logg != nil {
		logg.Error(r.Context(), "notification.persist", err)
	}
}
