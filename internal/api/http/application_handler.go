package http

import (
	"net/http"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ApplicationHandler struct {
	appSvc service.ApplicationService
}

func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

type prayerRequestBody struct {
	PrayerRequest string `json:"prayer_request"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req prayerRequestBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	app, err := h.appSvc.SubmitPrayerRequest(r.Context(), caller, req.PrayerRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) UpdatePrayerRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req prayerRequestBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	app, err := h.appSvc.UpdatePrayerRequest(r.Context(), caller, req.PrayerRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	app, err := h.appSvc.GetMyApplication(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	count, degraded, err := h.appSvc.RecordVisit(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := map[string]any{"visit_count": count}
	if degraded {
		resp["warning"] = "visit counting is temporarily unavailable"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ApplicationHandler) AttachDeliveryLinks(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	appID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, apperr.New(apperr.CodeInvalidArgument, "invalid application id"))
		return
	}

	var req struct {
		DriveLink1 string `json:"drive_link_1"`
		DriveLink2 string `json:"drive_link_2"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	app, err := h.appSvc.AttachDeliveryLinks(r.Context(), caller, appID, req.DriveLink1, req.DriveLink2)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}
