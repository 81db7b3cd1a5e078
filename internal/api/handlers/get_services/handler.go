package get_services

import (
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

type Handler struct {
	catalog domain.Catalog
	logger  Logger
}

func NewHandler(catalog domain.Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(h.catalog))
}
