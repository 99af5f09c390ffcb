package http

import (
	"net/http"

	"gracehub-backend/internal/metrics"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers onto a gorilla/mux router. Auth endpoints are
// public; everything else under /api/v1 requires a valid access token.
func NewRouter(
	authMW *AuthMiddleware,
	authH *AuthHandler,
	appH *ApplicationHandler,
	adminH *AdminHandler,
	noteH *NotificationHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/signup", authH.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authH.Refresh).Methods(http.MethodPost)

	// Authenticated
	auth := api.NewRoute().Subrouter()
	auth.Use(authMW.Require)

	auth.HandleFunc("/applications", appH.Submit).Methods(http.MethodPost)
	auth.HandleFunc("/applications/me", appH.GetMine).Methods(http.MethodGet)
	auth.HandleFunc("/applications/me/prayer-request", appH.UpdatePrayerRequest).Methods(http.MethodPut)
	auth.HandleFunc("/applications/me/visits", appH.RecordVisit).Methods(http.MethodPost)
	auth.HandleFunc("/applications/{id}/delivery-links", appH.AttachDeliveryLinks).Methods(http.MethodPost)

	auth.HandleFunc("/notifications", noteH.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id}/read", noteH.MarkRead).Methods(http.MethodPost)

	auth.HandleFunc("/admin/applications", adminH.ListApplications).Methods(http.MethodGet)
	auth.HandleFunc("/admin/applications/assign", adminH.AssignPastor).Methods(http.MethodPost)
	auth.HandleFunc("/admin/applications/bulk-assign", adminH.BulkAssign).Methods(http.MethodPost)
	auth.HandleFunc("/admin/pastors/workload", adminH.PastorWorkload).Methods(http.MethodGet)

	auth.HandleFunc("/admin/groups", adminH.ListGroups).Methods(http.MethodGet)
	auth.HandleFunc("/admin/groups", adminH.CreateGroup).Methods(http.MethodPost)
	auth.HandleFunc("/admin/groups/{id}", adminH.UpdateGroup).Methods(http.MethodPut)
	auth.HandleFunc("/admin/groups/{id}/pastor", adminH.SetGroupPastor).Methods(http.MethodPut)

	auth.HandleFunc("/admin/roles", adminH.GrantRole).Methods(http.MethodPost)
	auth.HandleFunc("/admin/roles", adminH.RevokeRole).Methods(http.MethodDelete)

	return r
}
