package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/garage-sale/internal/domain"
)

// Index lists the featured items of the shop front page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalog.Featured(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ItemListResponse{Items: mapRowsToResponse(rows)})
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := domain.CatalogQuery{
		Filter:      q.Get("filter"),
		IncludeSold: q.Get("include_sold") == "true",
		Page:        q.Get("page"),
	}

	page, err := h.catalog.List(r.Context(), query)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Items:       mapRowsToResponse(page.Items),
		Filter:      query.Filter,
		IncludeSold: query.IncludeSold,
		Page:        page.Number,
		NumPages:    page.NumPages,
		PageSize:    page.PageSize,
		Count:       page.Count,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
	})
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	item, err := h.items.GetItem(r.Context(), itemID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapItemToResponse(item))
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	params, err := parseItemParams(fields)
	if err != nil {
		handleError(w, r, err)
		return
	}

	item, err := h.items.CreateItem(r.Context(), params)
	if err != nil {
		handleError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "item created", "item_id", item.ID, "price_in_cents", item.PriceInCents)

	w.Header().Set("Location", itemPath(item.ID))
	writeJSON(w, http.StatusCreated, mapItemToResponse(item))
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	fields, err := readFields(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	params, err := parseItemParams(fields)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if _, err := h.items.UpdateItem(r.Context(), itemID, params); err != nil {
		handleError(w, r, err)
		return
	}

	http.Redirect(w, r, itemPath(itemID), http.StatusSeeOther)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	if err := h.items.DeleteItem(r.Context(), itemID); err != nil {
		handleError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "item deleted", "item_id", itemID)

	http.Redirect(w, r, catalogPath, http.StatusSeeOther)
}

// itemIDParam answers 404 for ids that cannot name an item.
func itemIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "item not found")
		return uuid.Nil, false
	}
	return itemID, true
}

func itemPath(id uuid.UUID) string {
	return catalogPath + id.String() + "/"
}
