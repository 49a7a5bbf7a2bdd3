package costs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medvoy/medvoy-platform/internal/hospitals"
	"github.com/medvoy/medvoy-platform/pkg/logging"
)

// ErrNoData is returned when no facility in the catalog performs the
// requested procedure in the requested country.
var ErrNoData = errors.New("costs: no matching facilities")

// EstimateRequest asks for a price band for one procedure.
type EstimateRequest struct {
	Procedure string `json:"procedure"`
	Country   string `json:"country,omitempty"`
}

// TierBand is the price band within one price tier.
type TierBand struct {
	Tier string `json:"tier"`
	Low  int    `json:"low"`
	High int    `json:"high"`
}

// Estimate is the aggregated price band across matching facilities.
type Estimate struct {
	ID         string     `json:"id"`
	Procedure  string     `json:"procedure"`
	Country    string     `json:"country,omitempty"`
	Currency   string     `json:"currency"`
	Low        int        `json:"low"`
	High       int        `json:"high"`
	Facilities int        `json:"facilities"`
	Tiers      []TierBand `json:"tiers"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CatalogSearcher is the slice of the hospital service the estimator needs.
type CatalogSearcher interface {
	Search(ctx context.Context, filter hospitals.SearchFilter) ([]hospitals.Hospital, error)
}

// Service aggregates facility cost bands into procedure estimates and keeps
// a record of every estimate it hands out.
type Service struct {
	catalog CatalogSearcher
	saved   SavedEstimateRepository
	log     *logging.Logger
}

func NewService(catalog CatalogSearcher, saved SavedEstimateRepository, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Default()
	}
	return &Service{catalog: catalog, saved: saved, log: log.Named("costs")}
}

var tierOrder = []hospitals.PriceRange{
	hospitals.PriceBudget,
	hospitals.PriceMidRange,
	hospitals.PricePremium,
}

// Estimate computes the price band for the request and saves the result.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (*Estimate, error) {
	if strings.TrimSpace(req.Procedure) == "" {
		return nil, errors.New("costs: procedure required")
	}

	found, err := s.catalog.Search(ctx, hospitals.SearchFilter{
		Procedure: req.Procedure,
		Country:   req.Country,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNoData
	}

	est := &Estimate{
		ID:         uuid.NewString(),
		Procedure:  req.Procedure,
		Country:    req.Country,
		Currency:   "USD",
		Low:        found[0].EstimatedCostLow,
		High:       found[0].EstimatedCostHigh,
		Facilities: len(found),
		CreatedAt:  time.Now().UTC(),
	}

	byTier := make(map[hospitals.PriceRange]*TierBand)
	for _, h := range found {
		if h.EstimatedCostLow < est.Low {
			est.Low = h.EstimatedCostLow
		}
		if h.EstimatedCostHigh > est.High {
			est.High = h.EstimatedCostHigh
		}
		band, ok := byTier[h.PriceRange]
		if !ok {
			byTier[h.PriceRange] = &TierBand{
				Tier: string(h.PriceRange),
				Low:  h.EstimatedCostLow,
				High: h.EstimatedCostHigh,
			}
			continue
		}
		if h.EstimatedCostLow < band.Low {
			band.Low = h.EstimatedCostLow
		}
		if h.EstimatedCostHigh > band.High {
			band.High = h.EstimatedCostHigh
		}
	}
	for _, tier := range tierOrder {
		if band, ok := byTier[tier]; ok {
			est.Tiers = append(est.Tiers, *band)
		}
	}

	if s.saved != nil {
		if err := s.saved.Save(ctx, est); err != nil {
			s.log.Warn("saving estimate failed", "estimate_id", est.ID, "error", err)
		}
	}
	return est, nil
}
