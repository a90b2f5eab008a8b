package http

import (
	"net/http"

	"github.com/flicsl/jsonsync/internal/utils"
)

func (h *Handler) getAppInfo(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetAppInfo(r.Context())

	utils.WriteJSON(w, info, http.StatusOK)
}
