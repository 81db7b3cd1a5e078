package run_cleanup

import (
	"errors"
	"net/http"

	"github.com/m04kA/HomeHair-BookingService/internal/api/handlers"
	"github.com/m04kA/HomeHair-BookingService/internal/usecase/run_maintenance"
)

const msgInvalidRequestBody = "corps de requête invalide"

type Handler struct {
	useCase MaintenanceUseCase
	logger  Logger
}

func NewHandler(useCase MaintenanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/maintenance/cleanup
// Частичный сбой возвращает 200 с success=false и ошибкой в шаге
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CleanupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /admin/maintenance/cleanup - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp := h.useCase.Execute(r.Context(), &run_maintenance.Request{InitializeHorizon: req.InitializeHorizon})
	if resp.Failed() {
		h.logger.Warn("POST /admin/maintenance/cleanup - Completed with errors: steps=%d", len(resp.Steps))
	} else {
		h.logger.Info("POST /admin/maintenance/cleanup - Completed successfully: steps=%d", len(resp.Steps))
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
