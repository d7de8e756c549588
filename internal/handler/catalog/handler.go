package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	"github.com/moosemarche/moosebot/backend/pkg/utils"
)

// Handler exposes the read-only simulation catalog.
type Handler struct {
	store catalog.Store
}

// New creates the catalog handler.
func New(store catalog.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the catalog endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.handleCatalog)
}

type catalogResponse struct {
	PricingModel    []catalog.PricingTier `json:"pricingModel"`
	VendorInventory []catalog.Vendor      `json:"vendorInventory"`
	Categories      []string              `json:"categories"`
}

func (h *Handler) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, catalogResponse{
		PricingModel:    h.store.Pricing(),
		VendorInventory: h.store.Vendors(),
		Categories:      h.store.Categories(),
	})
}
