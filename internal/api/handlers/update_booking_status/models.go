package update_booking_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}
