package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/pkg/db/models"
	"github.com/harborview/procurestock-backend/pkg/enums"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
	"github.com/harborview/procurestock-backend/pkg/pagination"
)

// Service defines notification publish/list/read operations.
type Service interface {
	Notify(ctx context.Context, input NotifyInput) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, organizationID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, organizationID uuid.UUID) (int64, error)
}

type service struct {
	repo Repository
}

// NotifyInput carries one notification to persist for an organization.
type NotifyInput struct {
	OrganizationID uuid.UUID
	UserID         *uuid.UUID
	Severity       enums.NotificationSeverity
	Title          string
	Message        string
	Link           *string
}

// ListParams configures pagination for notifications.
type ListParams struct {
	OrganizationID uuid.UUID
	Limit          int
	Cursor         string
	UnreadOnly     bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

// Notify persists one notification. Callers treat this as fire-and-forget:
// a failed write is the caller's to log and ignore, never to fail a business
// operation over.
func (s *service) Notify(ctx context.Context, input NotifyInput) error {
	if input.OrganizationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "organization id required")
	}
	if !input.Severity.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid notification severity")
	}
	if input.Title == "" || input.Message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification title and message required")
	}

	notification := &models.Notification{
		ID:             uuid.New(),
		OrganizationID: input.OrganizationID,
		UserID:         input.UserID,
		Severity:       input.Severity,
		Title:          input.Title,
		Message:        input.Message,
		Link:           input.Link,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist notification")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.OrganizationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "organization id required")
	}

	query := listNotificationsParams{
		OrganizationID: params.OrganizationID,
		Limit:          pagination.LimitWithBuffer(params.Limit),
		UnreadOnly:     params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  rows,
		Cursor: cursor,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, organizationID, notificationID uuid.UUID) error {
	if organizationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "organization id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, organizationID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, organizationID uuid.UUID) (int64, error) {
	if organizationID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "organization id required")
	}

	count, err := s.repo.MarkAllRead(ctx, organizationID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}
