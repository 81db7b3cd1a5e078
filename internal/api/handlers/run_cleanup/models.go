package run_cleanup

import (
	"github.com/m04kA/HomeHair-BookingService/internal/usecase/run_maintenance"
)

// CleanupRequest HTTP request model
type CleanupRequest struct {
	InitializeHorizon bool `json:"initializeHorizon"`
}

// StepResponse итог одного шага обслуживания
type StepResponse struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Error *string `json:"error,omitempty"`
}

// CleanupResponse HTTP response model
type CleanupResponse struct {
	Success bool            `json:"success"`
	Steps   []*StepResponse `json:"steps"`
}

// FromUseCaseResponse конвертирует отчёт use case в HTTP response
func FromUseCaseResponse(resp *run_maintenance.Response) *CleanupResponse {
	out := &CleanupResponse{
		Success: !resp.Failed(),
		Steps:   make([]*StepResponse, 0, len(resp.Steps)),
	}
	for _, s := range resp.Steps {
		step := &StepResponse{Name: s.Name, Count: s.Count}
		if s.Err != nil {
			msg := s.Err.Error()
			step.Error = &msg
		}
		out.Steps = append(out.Steps, step)
	}
	return out
}
