package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/harborview/procurestock-backend/internal/notifications"
	pkgerrors "github.com/harborview/procurestock-backend/pkg/errors"
)

type recordingNotificationsService struct {
	stubNotifier

	listParams notifications.ListParams
	markedID   uuid.UUID
	markedOrg  uuid.UUID
	markErr    error
	allCount   int64
}

func (s *recordingNotificationsService) List(_ context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	s.listParams = params
	return &notifications.ListResult{}, nil
}

func (s *recordingNotificationsService) MarkRead(_ context.Context, organizationID, notificationID uuid.UUID) error {
	s.markedOrg = organizationID
	s.markedID = notificationID
	return s.markErr
}

func (s *recordingNotificationsService) MarkAllRead(context.Context, uuid.UUID) (int64, error) {
	return s.allCount, nil
}

func TestListNotificationsParsesQuery(t *testing.T) {
	orgID := uuid.New()
	svc := &recordingNotificationsService{}

	req := httptest.NewRequest(http.MethodGet, "/api/notifications?limit=10&unreadOnly=true&cursor=abc", nil)
	req = identityRequest(req, orgID, uuid.New())
	resp := httptest.NewRecorder()
	ListNotifications(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.listParams.OrganizationID != orgID {
		t.Fatalf("unexpected organization %s", svc.listParams.OrganizationID)
	}
	if svc.listParams.Limit != 10 || !svc.listParams.UnreadOnly || svc.listParams.Cursor != "abc" {
		t.Fatalf("unexpected params %+v", svc.listParams)
	}
}

func TestListNotificationsRejectsBadLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/notifications?limit=-3", nil)
	req = identityRequest(req, uuid.New(), uuid.New())
	resp := httptest.NewRecorder()
	ListNotifications(&recordingNotificationsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	orgID := uuid.New()
	notificationID := uuid.New()
	svc := &recordingNotificationsService{}

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/"+notificationID.String()+"/read", nil)
	req = identityRequest(req, orgID, uuid.New())
	req = withRouteParam(req, "notificationId", notificationID.String())
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.markedID != notificationID || svc.markedOrg != orgID {
		t.Fatalf("unexpected mark call org=%s id=%s", svc.markedOrg, svc.markedID)
	}
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	svc := &recordingNotificationsService{
		markErr: pkgerrors.New(pkgerrors.CodeNotFound, "notification not found"),
	}
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/"+uuid.NewString()+"/read", nil)
	req = identityRequest(req, uuid.New(), uuid.New())
	req = withRouteParam(req, "notificationId", uuid.NewString())
	resp := httptest.NewRecorder()
	MarkNotificationRead(svc, testLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	svc := &recordingNotificationsService{allCount: 7}
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/read-all", nil)
	req = identityRequest(req, uuid.New(), uuid.New())
	resp := httptest.NewRecorder()
	MarkAllNotificationsRead(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["updated"] != 7 {
		t.Fatalf("expected 7 updated got %d", envelope.Data["updated"])
	}
}
