package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// NotificationsHandler handles match notification endpoints.
type NotificationsHandler struct {
	DB *sql.DB
}

type claimResponse struct {
	Success       bool   `json:"success"`
	FinderName    string `json:"finder_name"`
	FinderContact string `json:"finder_contact"`
}

// List handles GET /api/notifications: pending matches for the current
// user's lost items, newest first.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	notifications, err := store.ListPendingForUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []model.MatchNotification{}
	}
	jsonResponse(w, http.StatusOK, notifications)
}

// Claim handles POST /api/notifications/{id}/claim. On success it returns
// the finder's name and contact info; the matched items and the notification
// are gone afterwards. A notification that does not exist and one whose lost
// item belongs to another user both come back as 404.
func (h *NotificationsHandler) Claim(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	result, err := store.ClaimNotification(r.Context(), h.DB, id, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to claim notification")
		return
	}

	slog.Info("match claimed", "notification", id, "user", claims.Email)
	jsonResponse(w, http.StatusOK, claimResponse{
		Success:       true,
		FinderName:    result.FinderName,
		FinderContact: result.FinderContact,
	})
}
