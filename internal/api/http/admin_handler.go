package http

import (
	"net/http"
	"strconv"
	"strings"

	"gracehub-backend/internal/apperr"
	"gracehub-backend/internal/domain"
	"gracehub-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	assignSvc service.AssignmentService
	adminSvc  service.AdminService
	appSvc    service.ApplicationService
}

func NewAdminHandler(assignSvc service.AssignmentService, adminSvc service.AdminService, appSvc service.ApplicationService) *AdminHandler {
	return &AdminHandler{assignSvc: assignSvc, adminSvc: adminSvc, appSvc: appSvc}
}

func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := domain.ApplicationStatus(strings.ToUpper(r.URL.Query().Get("status")))
	var groupID *int32
	if raw := r.URL.Query().Get("group_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeError(w, r, apperr.New(apperr.CodeInvalidArgument, "invalid group_id"))
			return
		}
		gid := int32(id)
		groupID = &gid
	}

	apps, err := h.appSvc.ListApplications(r.Context(), caller, status, groupID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func (h *AdminHandler) AssignPastor(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req struct {
		ApplicationIDs []string `json:"application_ids"`
		PastorID       int32    `json:"pastor_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ApplicationIDs))
	for _, raw := range req.ApplicationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, apperr.Newf(apperr.CodeInvalidArgument, "invalid application id %q", raw))
			return
		}
		ids = append(ids, id)
	}

	count, err := h.assignSvc.AssignPastor(r.Context(), caller, ids, req.PastorID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (h *AdminHandler) BulkAssign(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	count, err := h.assignSvc.BulkAssignByGroup(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assigned_count": count})
}

func (h *AdminHandler) PastorWorkload(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	workloads, err := h.assignSvc.ListPastorsWithWorkload(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pastors": workloads})
}

func (h *AdminHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	group, err := h.adminSvc.CreateGroup(r.Context(), caller, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *AdminHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	groupID, err := groupIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req struct {
		Name     string `json:"name"`
		IsActive bool   `json:"is_active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	group, err := h.adminSvc.UpdateGroup(r.Context(), caller, groupID, req.Name, req.IsActive)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (h *AdminHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	groups, err := h.adminSvc.ListGroups(r.Context(), caller, activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *AdminHandler) SetGroupPastor(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	groupID, err := groupIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// pastor_id null clears the binding.
	var req struct {
		PastorID *int32 `json:"pastor_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.assignSvc.SetGroupPastor(r.Context(), caller, groupID, req.PastorID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type roleRequest struct {
	UserID     int32  `json:"user_id"`
	Capability string `json:"capability"`
}

func (h *AdminHandler) GrantRole(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.adminSvc.GrantCapability(r.Context(), caller, req.UserID, domain.Capability(req.Capability)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.adminSvc.RevokeCapability(r.Context(), caller, req.UserID, domain.Capability(req.Capability)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func groupIDFromPath(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.CodeInvalidArgument, "invalid group id")
	}
	return int32(id), nil
}
