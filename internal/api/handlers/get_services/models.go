package get_services

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Price      *decimal.Decimal `json:"price"` // null - sur devis
	PriceLabel string           `json:"priceLabel"`
	Duration   string           `json:"duration"`
}

// FromCatalog конвертирует каталог в HTTP response
func FromCatalog(catalog domain.Catalog) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, ServiceResponse{
			ID:         s.ID,
			Name:       s.Name,
			Price:      s.Price,
			PriceLabel: s.PriceLabel(),
			Duration:   s.Duration,
		})
	}
	return out
}
