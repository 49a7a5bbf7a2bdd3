package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/medvoy/medvoy-platform/internal/costs"
	"github.com/medvoy/medvoy-platform/internal/flights"
	"github.com/medvoy/medvoy-platform/internal/hospitals"
	"github.com/medvoy/medvoy-platform/internal/relay"
)

const flightImageURL = "https://images.unsplash.com/photo-1436491865332-7a61a109cc05?w=400"

var hospitalOptionsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"procedure": {
			"type": "string",
			"description": "The medical procedure or treatment the patient needs (e.g., 'knee replacement', 'dental implants', 'heart surgery')"
		},
		"country": {
			"type": "string",
			"description": "Preferred country or region (e.g., 'Thailand', 'Singapore', 'India', 'Turkey')"
		},
		"priceRange": {
			"type": "string",
			"enum": ["budget", "mid-range", "premium"],
			"description": "Patient's budget level: budget (<$5k), mid-range ($5k-$15k), or premium (>$15k)"
		}
	},
	"required": ["procedure", "country", "priceRange"]
}`)

var flightSearchSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"origin": {
			"type": "string",
			"description": "Origin city or country (e.g., 'New York', 'USA', 'London')"
		},
		"destination": {
			"type": "string",
			"description": "Destination city or country based on hospital location"
		},
		"departureDate": {
			"type": "string",
			"description": "Preferred departure date (YYYY-MM-DD format)"
		},
		"returnDate": {
			"type": "string",
			"description": "Preferred return date (YYYY-MM-DD format)"
		},
		"passengers": {
			"type": "number",
			"description": "Number of passengers (default: 1)"
		}
	},
	"required": ["origin", "destination", "departureDate"]
}`)

var costEstimateSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"procedure": {
			"type": "string",
			"description": "The medical procedure to price (e.g., 'knee replacement', 'heart surgery')"
		},
		"country": {
			"type": "string",
			"description": "Optional destination country to narrow the estimate"
		}
	},
	"required": ["procedure"]
}`)

// BuildRegistry wires the concierge tools to the capability endpoints.
func BuildRegistry(caps *CapabilityClient) (*relay.Registry, error) {
	reg := relay.NewRegistry()

	err := reg.Register(&relay.Tool{
		Name:        "generate_hospital_options",
		Description: "Generate a list of hospital recommendations based on patient requirements. Use this when you have gathered enough information about the procedure, location preferences, and budget.",
		Parameters:  hospitalOptionsSchema,
		Resolve:     resolveHospitals(caps),
		Fallback:    relay.FallbackReprompt,
		FallbackPrompt: func(json.RawMessage, error) string {
			return "The hospital search service is temporarily unavailable. Suggest well-known JCI-accredited hospitals for the patient's procedure from your general knowledge, mention that live listings are briefly unavailable, and offer to retry shortly."
		},
	})
	if err != nil {
		return nil, err
	}

	err = reg.Register(&relay.Tool{
		Name:        "search_flights",
		Description: "Search for flights to the medical destination. Use this after the patient has selected a hospital and needs flight options.",
		Parameters:  flightSearchSchema,
		Resolve:     resolveFlights(caps),
		Fallback:    relay.FallbackSilent,
	})
	if err != nil {
		return nil, err
	}

	err = reg.Register(&relay.Tool{
		Name:        "get_cost_estimate",
		Description: "Estimate the total cost band for a procedure across vetted facilities. Use this when the patient asks what a treatment costs.",
		Parameters:  costEstimateSchema,
		Resolve:     resolveCosts(caps),
		Fallback:    relay.FallbackReprompt,
		FallbackPrompt: func(json.RawMessage, error) string {
			return "The cost estimate service is temporarily unavailable. Give the patient a rough price range for the procedure from your general knowledge, clearly labeled as approximate, and offer to fetch exact figures shortly."
		},
	})
	if err != nil {
		return nil, err
	}

	return reg, nil
}

func resolveHospitals(caps *CapabilityClient) relay.ResolverFunc {
	return func(ctx context.Context, args json.RawMessage) (*relay.Result, error) {
		var filter hospitals.SearchFilter
		if err := json.Unmarshal(args, &filter); err != nil {
			return nil, fmt.Errorf("chat: decoding hospital args: %w", err)
		}
		filter.ForceRefresh = true

		raw, err := caps.Post(ctx, "/capabilities/hospitals", filter)
		if err != nil {
			return nil, err
		}

		var body struct {
			Hospitals []hospitals.Hospital `json:"hospitals"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("chat: decoding hospital response: %w", err)
		}

		options := make([]relay.Option, 0, len(body.Hospitals))
		for _, h := range body.Hospitals {
			options = append(options, relay.Option{
				ID:    h.ID,
				Title: h.Name,
				Description: fmt.Sprintf("%s • %s • Rating: %s/5",
					h.Location, h.AccreditationInfo, strconv.FormatFloat(h.Rating, 'f', -1, 64)),
				Price:             string(h.PriceRange),
				ImageURL:          h.ImageURL,
				Badge:             h.AccreditationInfo,
				ContactEmail:      h.ContactEmail,
				EstimatedCostLow:  h.EstimatedCostLow,
				EstimatedCostHigh: h.EstimatedCostHigh,
			})
		}
		return &relay.Result{Options: options, Raw: raw}, nil
	}
}

func resolveFlights(caps *CapabilityClient) relay.ResolverFunc {
	return func(ctx context.Context, args json.RawMessage) (*relay.Result, error) {
		raw, err := caps.Post(ctx, "/capabilities/flights", args)
		if err != nil {
			return nil, err
		}

		var body struct {
			Flights []flights.Flight `json:"flights"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("chat: decoding flight response: %w", err)
		}

		options := make([]relay.Option, 0, len(body.Flights))
		for _, f := range body.Flights {
			options = append(options, relay.Option{
				ID:    f.ID,
				Title: strings.TrimSpace(f.Airline + " " + f.Logo),
				Description: fmt.Sprintf("%s → %s • %s • %s",
					f.Origin, f.Destination, f.Duration, f.Stops),
				Price:      fmt.Sprintf("$%d", f.Price),
				ImageURL:   flightImageURL,
				Badge:      f.Stops,
				Details:    fmt.Sprintf("Depart: %s • Arrive: %s", f.DepartureTime, f.ArrivalTime),
				BookingURL: f.BookingURL,
			})
		}
		return &relay.Result{Options: options, Raw: raw}, nil
	}
}

func resolveCosts(caps *CapabilityClient) relay.ResolverFunc {
	return func(ctx context.Context, args json.RawMessage) (*relay.Result, error) {
		raw, err := caps.Post(ctx, "/capabilities/costs", args)
		if err != nil {
			return nil, err
		}

		var body struct {
			Estimate costs.Estimate `json:"estimate"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("chat: decoding cost response: %w", err)
		}

		est := body.Estimate
		options := make([]relay.Option, 0, len(est.Tiers))
		for _, tier := range est.Tiers {
			options = append(options, relay.Option{
				ID:                "estimate-" + tier.Tier,
				Title:             tierTitle(tier.Tier),
				Description:       describeEstimate(est),
				Price:             fmt.Sprintf("$%d - $%d", tier.Low, tier.High),
				Badge:             tier.Tier,
				EstimatedCostLow:  tier.Low,
				EstimatedCostHigh: tier.High,
			})
		}
		return &relay.Result{Options: options, Raw: raw}, nil
	}
}

func tierTitle(tier string) string {
	if tier == "" {
		return "Estimate"
	}
	return strings.ToUpper(tier[:1]) + tier[1:] + " tier"
}

func describeEstimate(est costs.Estimate) string {
	desc := est.Procedure
	if est.Country != "" {
		desc += " in " + est.Country
	}
	return fmt.Sprintf("%s • %d facilities compared", desc, est.Facilities)
}
