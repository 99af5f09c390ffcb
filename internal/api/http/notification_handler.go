package http

import (
	"net/http"
	"strconv"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	page := int32(1)
	pageSize := int32(20)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil {
			pageSize = int32(v)
		}
	}

	notes, total, err := h.noteSvc.GetNotifications(r.Context(), caller, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes, "total": total})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, r, apperr.New(apperr.CodeInvalidArgument, "invalid notification id"))
		return
	}

	if err := h.noteSvc.MarkAsRead(r.Context(), caller, int32(id)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
