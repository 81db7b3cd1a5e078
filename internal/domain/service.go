package domain

import "github.com/shopspring/decimal"

// Service catalogue entry
type Service struct {
	ID       string
	Name     string
	Price    *decimal.Decimal // nil means quoted on request
	Duration string
}

// PriceLabel renders the price the way it is shown to customers
func (s Service) PriceLabel() string {
	if s.Price == nil {
		return "Sur devis"
	}
	return s.Price.StringFixedBank(0) + "€"
}

// Catalog list of services offered
type Catalog []Service

// Lookup returns the service by id
func (c Catalog) Lookup(id string) (Service, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// DisplayName returns the service name or the raw id when unknown
func (c Catalog) DisplayName(id string) string {
	if s, ok := c.Lookup(id); ok {
		return s.Name
	}
	return id
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultCatalog services offered when the configuration defines none
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "coupe-brushing", Name: "Coupe & Brushing", Price: price(45), Duration: "1h"},
		{ID: "coloration", Name: "Coloration", Price: price(60), Duration: "1h30"},
		{ID: "balayage", Name: "Balayage", Price: price(80), Duration: "2h"},
		{ID: "coiffure-evenement", Name: "Coiffure Événementielle", Price: nil, Duration: "Variable"},
		{ID: "coupe-homme", Name: "Coupe Homme", Price: price(30), Duration: "45min"},
		{ID: "coupe-enfant", Name: "Coupe Enfant", Price: price(25), Duration: "30min"},
	}
}
