package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"github.com/prizepacket/prizepacket/internal/apperrors"
	"github.com/prizepacket/prizepacket/internal/model"
	"github.com/prizepacket/prizepacket/internal/service"
)

// Handler is the thin routing glue over the domain services. It translates
// HTTP in and out; every rule lives in the services underneath.
type Handler struct {
	campaigns   *service.CampaignService
	entries     *service.EntryService
	inventory   *service.InventoryService
	fulfillment *service.FulfillmentService
	credentials *service.CredentialService
}

// NewHandler wires the domain services over one database handle.
func NewHandler(postgres *sqlx.DB) *Handler {
	return &Handler{
		campaigns:   service.NewCampaignService(postgres),
		entries:     service.NewEntryService(postgres),
		inventory:   service.NewInventoryService(postgres),
		fulfillment: service.NewFulfillmentService(postgres),
		credentials: service.NewCredentialService(postgres),
	}
}

// Mount registers all domain routes on the router.
func (h *Handler) Mount(r chi.Router) {
	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", h.createCampaign)
		r.Get("/", h.listCampaigns)
		r.Get("/{id}", h.getCampaign)
		r.Patch("/{id}/active", h.setCampaignActive)
		r.Delete("/{id}", h.deleteCampaign)
		r.Post("/{id}/entries", h.recordEntry)
		r.Get("/{id}/entries", h.listEntries)
		r.Get("/{id}/stats", h.campaignStats)
	})
	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.createInventoryItem)
		r.Get("/", h.listInventory)
		r.Get("/{id}", h.getInventoryItem)
	})
	r.Route("/winners", func(r chi.Router) {
		r.Post("/", h.promoteWinner)
		r.Get("/", h.listWinners)
		r.Get("/{id}", h.getWinner)
		r.Post("/{id}/advance", h.advanceWinner)
		r.Post("/{id}/contact", h.recordWinnerContact)
		r.Post("/{id}/notes", h.annotateWinner)
		r.Post("/{id}/withdraw", h.withdrawWinner)
	})
	r.Put("/credentials", h.upsertCredential)
	r.Get("/credentials", h.getCredential)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Duplicate
// and out-of-stock are expected signals and keep their identity in the body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validation *apperrors.ValidationError
	var transition *apperrors.InvalidTransitionError
	var warn *apperrors.ConsistencyWarning
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateEntry), errors.Is(err, apperrors.ErrOutOfStock):
		status = http.StatusConflict
	case errors.As(err, &validation):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &transition):
		status = http.StatusConflict
	case errors.As(err, &warn):
		// The mutation committed; the warning rides along for the operator.
		writeJSON(w, http.StatusOK, map[string]string{"warning": warn.Error()})
		return
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.campaigns.Create(r.Context(), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := h.campaigns.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

func (h *Handler) setCampaignActive(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.campaigns.SetActive(r.Context(), id, req.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (h *Handler) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	if err := h.campaigns.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordEntry(w http.ResponseWriter, r *http.Request) {
	campaignID, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var req struct {
		Platform       string  `json:"platform"`
		PlatformUserID *string `json:"platform_user_id"`
		DisplayName    string  `json:"display_name"`
		SourceDetail   *string `json:"source_detail"`
		IsSubscriber   bool    `json:"is_subscriber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.entries.Record(r.Context(), service.NewEntry{
		CampaignID:     campaignID,
		Platform:       model.Platform(req.Platform),
		PlatformUserID: req.PlatformUserID,
		DisplayName:    req.DisplayName,
		SourceDetail:   req.SourceDetail,
		IsSubscriber:   req.IsSubscriber,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	campaignID, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	entrants, err := h.entries.List(r.Context(), campaignID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entrants)
}

func (h *Handler) campaignStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	count, err := h.entries.Count(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaign_id":   id,
		"entrant_count": count,
	})
}

func (h *Handler) createInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemName   string  `json:"item_name"`
		Sponsor    *string `json:"sponsor"`
		ImageURL   *string `json:"image_url"`
		QtyInitial int     `json:"qty_initial"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.inventory.Create(r.Context(), req.ItemName, req.Sponsor, req.ImageURL, req.QtyInitial)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	item, err := h.inventory.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) promoteWinner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID        int64  `json:"owner_id"`
		CampaignID     *int64 `json:"campaign_id"`
		InventoryID    *int64 `json:"inventory_id"`
		DisplayName    string `json:"display_name"`
		PlatformOrigin string `json:"platform_origin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.fulfillment.Promote(r.Context(), service.PromoteParams{
		OwnerID:        req.OwnerID,
		CampaignID:     req.CampaignID,
		InventoryID:    req.InventoryID,
		DisplayName:    req.DisplayName,
		PlatformOrigin: req.PlatformOrigin,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) listWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := h.fulfillment.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, winners)
}

func (h *Handler) getWinner(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid winner id", http.StatusBadRequest)
		return
	}

	winner, err := h.fulfillment.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, winner)
}

func (h *Handler) advanceWinner(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid winner id", http.StatusBadRequest)
		return
	}

	var req struct {
		Stage string `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stage, ok := model.ParseStage(req.Stage)
	if !ok {
		http.Error(w, "unknown stage", http.StatusBadRequest)
		return
	}

	if err := h.fulfillment.Advance(r.Context(), id, stage); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"stage": stage.String()})
}

func (h *Handler) recordWinnerContact(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid winner id", http.StatusBadRequest)
		return
	}

	var req struct {
		ContactEmail    *string `json:"contact_email"`
		ShippingAddress *string `json:"shipping_address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.fulfillment.RecordContact(r.Context(), id, req.ContactEmail, req.ShippingAddress); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) annotateWinner(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid winner id", http.StatusBadRequest)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.fulfillment.Annotate(r.Context(), id, req.Notes); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) withdrawWinner(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "invalid winner id", http.StatusBadRequest)
		return
	}

	if err := h.fulfillment.Withdraw(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) upsertCredential(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID       int64      `json:"owner_id"`
		ServiceName   string     `json:"service_name"`
		ServiceUserID *string    `json:"service_user_id"`
		AccessToken   string     `json:"access_token"`
		RefreshToken  *string    `json:"refresh_token"`
		ExpiresAt     *time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.credentials.Upsert(r.Context(), req.OwnerID, model.ServiceName(req.ServiceName),
		req.ServiceUserID, req.AccessToken, req.RefreshToken, req.ExpiresAt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// getCredential returns credential metadata; token values stay out of the
// JSON encoding.
func (h *Handler) getCredential(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid owner id", http.StatusBadRequest)
		return
	}

	cred, err := h.credentials.Get(r.Context(), ownerID, model.ServiceName(r.URL.Query().Get("service_name")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cred)
}
