package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusfind/campusfind/internal/imaging"
	"github.com/campusfind/campusfind/internal/match"
	"github.com/campusfind/campusfind/internal/model"
	"github.com/campusfind/campusfind/internal/store"
)

// ItemsHandler handles item listing endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	ContactInfo string `json:"contact_info"`
}

// List handles GET /api/items with optional kind/category/location/keyword filters.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ItemFilter{
		Kind:     q.Get("kind"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		Keyword:  q.Get("keyword"),
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// ListMine handles GET /api/items/mine.
func (h *ItemsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, store.ItemFilter{UserID: claims.UserID})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. Creating a FOUND item runs the matching
// engine against all open LOST items before the response is written.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if !model.ValidKind(req.Kind) {
		jsonError(w, http.StatusBadRequest, "kind must be LOST or FOUND")
		return
	}
	if req.Category == "" {
		req.Category = model.CategoryOthers
	}
	if !model.ValidCategory(req.Category) {
		jsonError(w, http.StatusBadRequest, "invalid category")
		return
	}
	if !model.ValidLocation(req.Location) {
		jsonError(w, http.StatusBadRequest, "invalid location")
		return
	}
	if !model.ValidContactInfo(req.ContactInfo) {
		jsonError(w, http.StatusBadRequest, "contact info must be a valid phone number")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, claims.UserID,
		req.Title, req.Description, req.Kind, req.Category, req.Location, req.ContactInfo)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	if item.Kind == model.KindFound {
		matched, err := match.Run(r.Context(), h.DB, item)
		if err != nil {
			// The listing exists; matching can be incomplete without failing
			// the creation.
			slog.Error("matching failed", "item", item.ID, "error", err)
		} else if matched > 0 {
			slog.Info("found item matched", "item", item.ID, "notifications", matched)
		}
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (h *ItemsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if item.UserID != claims.UserID {
		jsonError(w, http.StatusForbidden, "only the poster can add a photo")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemPhoto(r.Context(), h.DB, id, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/items/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemPhoto(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// Meta handles GET /api/meta, returning the fixed category and location choices.
func (h *ItemsHandler) Meta(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"categories": model.CategoryLabels,
		"locations":  model.LocationLabels,
	})
}
