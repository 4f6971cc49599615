package controllers

import (
	"net/http"

	"github.com/harborview/procurestock-backend/api/responses"
	"github.com/harborview/procurestock-backend/api/validators"
	"github.com/harborview/procurestock-backend/internal/auth"
	"github.com/harborview/procurestock-backend/pkg/logger"
)

// AuthLogin exchanges credentials for an access token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
