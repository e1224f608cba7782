package handler

import "net/http"

// HealthHandler serves the liveness and version endpoints.
type HealthHandler struct {
	version string
}

func NewHealthHandler(version string) *HealthHandler { return &HealthHandler{version: version} }

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, "API is working fine.", nil)
}

func (h *HealthHandler) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: h.version})
}
