package services

import (
	"context"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/logger"
	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

// CatalogService fetches purchasable race categories and normalizes them
// into priced tickets. When the backend is unreachable it serves the fixed
// built-in catalog instead; the failure is logged but never surfaced.
type CatalogService struct {
	api CatalogAPI
	log logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(api CatalogAPI, log logger.Logger) *CatalogService {
	return &CatalogService{api: api, log: log}
}

// Catalog returns the current race catalog, falling back to the built-in
// one on any fetch failure
func (s *CatalogService) Catalog(ctx context.Context) []models.Ticket {
	records, err := s.api.GetMarathons(ctx)
	if err != nil {
		s.log.Warn("marathon catalog fetch failed, serving fallback", "error", err)
		return FallbackCatalog()
	}

	tickets := make([]models.Ticket, 0, len(records))
	for _, rec := range records {
		tickets = append(tickets, normalizeMarathon(rec))
	}
	if len(tickets) == 0 {
		s.log.Warn("marathon catalog empty, serving fallback")
		return FallbackCatalog()
	}
	return tickets
}

func normalizeMarathon(rec MarathonRecord) models.Ticket {
	fees := rec.FeesAmount
	if fees < 0 {
		fees = 0
	}
	discount := rec.DiscountPercentage
	if discount < 0 {
		discount = 0
	}
	if discount > 100 {
		discount = 100
	}
	return models.Ticket{
		ID:              rec.ID,
		Name:            rec.Name,
		Distance:        rec.TrackLength,
		Price:           fees,
		DiscountedPrice: fees - fees*discount/100,
		DiscountPercent: discount,
		Description:     rec.Description,
	}
}

// FallbackCatalog is the fixed four-race catalog served when the backend
// catalog cannot be fetched
func FallbackCatalog() []models.Ticket {
	return []models.Ticket{
		{
			ID:              1,
			Name:            "Full Marathon",
			Distance:        "42.195 KM",
			Price:           1499,
			DiscountedPrice: 1199,
			DiscountPercent: 20,
			Description:     "The classic distance through the heart of the city.",
		},
		{
			ID:              2,
			Name:            "Half Marathon",
			Distance:        "21.1 KM",
			Price:           1199,
			DiscountedPrice: 959,
			DiscountPercent: 20,
			Description:     "A fast, flat half for seasoned and first-time runners alike.",
		},
		{
			ID:              3,
			Name:            "10K Run",
			Distance:        "10 KM",
			Price:           899,
			DiscountedPrice: 719,
			DiscountPercent: 20,
			Description:     "Ten kilometres along the riverside course.",
		},
		{
			ID:              4,
			Name:            "5K Fun Run",
			Distance:        "5 KM",
			Price:           599,
			DiscountedPrice: 479,
			DiscountPercent: 20,
			Description:     "An easy-paced community run for all ages.",
		},
	}
}
