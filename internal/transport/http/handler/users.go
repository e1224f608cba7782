package handler

import (
	"net/http"

	"github.com/flexibill/internal/application/license"
	"github.com/flexibill/internal/domain"
	"github.com/flexibill/internal/transport/http/middleware"
)

// UserHandler serves the caller's own user and license records.
type UserHandler struct {
	svc license.Service
}

func NewUserHandler(svc license.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.MobileNumberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	u, err := h.svc.Profile(r.Context(), mobile)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeSuccess(w, "User fetched successfully", u.Fields())
}

func (h *UserHandler) Licenses(w http.ResponseWriter, r *http.Request) {
	mobile, ok := middleware.MobileNumberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	licenses, err := h.svc.ListForMobile(r.Context(), mobile)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeSuccess(w, "Licenses fetched successfully", map[string]any{"licenses": licenseFields(licenses)})
}

func licenseFields(licenses []domain.License) []map[string]any {
	out := make([]map[string]any, len(licenses))
	for i := range licenses {
		out[i] = licenses[i].Fields()
	}
	return out
}
