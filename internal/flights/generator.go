package flights

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
)

// SearchRequest describes one round-trip or one-way flight search.
type SearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Passengers    int    `json:"passengers,omitempty"`
}

// Validate checks the required fields.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return errors.New("flights: origin required")
	}
	if strings.TrimSpace(r.Destination) == "" {
		return errors.New("flights: destination required")
	}
	if strings.TrimSpace(r.DepartureDate) == "" {
		return errors.New("flights: departure date required")
	}
	if r.Passengers <= 0 {
		r.Passengers = 1
	}
	return nil
}

// Flight is one bookable quote.
type Flight struct {
	ID            string `json:"id"`
	Airline       string `json:"airline"`
	Logo          string `json:"logo"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Price         int    `json:"price"`
	Currency      string `json:"currency"`
	Duration      string `json:"duration"`
	Stops         string `json:"stops"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Passengers    int    `json:"passengers"`
	BookingURL    string `json:"bookingUrl"`
}

type carrier struct {
	name string
	logo string
}

var carriers = []carrier{
	{"Emirates", "🛫"},
	{"Qatar Airways", "✈️"},
	{"Singapore Airlines", "🛩️"},
	{"Turkish Airlines", "🛬"},
}

var departureHours = []int{8, 11, 15, 20}

// routeHours estimates flight time from the destination's region.
func routeHours(destination string) int {
	d := strings.ToLower(destination)
	switch {
	case strings.Contains(d, "thailand") || strings.Contains(d, "bangkok"):
		return 12
	case strings.Contains(d, "turkey") || strings.Contains(d, "istanbul"):
		return 10
	case strings.Contains(d, "india"):
		return 8
	case strings.Contains(d, "singapore"):
		return 14
	case strings.Contains(d, "malaysia"):
		return 13
	case strings.Contains(d, "korea"):
		return 11
	default:
		return 10
	}
}

// basePrice tiers the route by haul length.
func basePrice(destination string) int {
	hours := routeHours(destination)
	switch {
	case hours < 3:
		return 200
	case hours < 7:
		return 500
	default:
		return 800
	}
}

// jitter derives a stable per-route, per-carrier price offset so repeated
// searches quote the same numbers.
func jitter(origin, destination, airline string, span int) int {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(origin)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(destination)))
	h.Write([]byte{0})
	h.Write([]byte(airline))
	return int(h.Sum32() % uint32(span))
}

// Generate produces one quote per carrier for the route.
func Generate(req SearchRequest) ([]Flight, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hours := routeHours(req.Destination)
	base := basePrice(req.Destination)

	out := make([]Flight, 0, len(carriers))
	for i, c := range carriers {
		price := base + i*150 + jitter(req.Origin, req.Destination, c.name, 200)

		stops := 0
		switch i {
		case 0:
			stops = 0
		case 1:
			stops = 1
		default:
			stops = jitter(req.Origin, req.Destination, c.name, 2)
		}
		stopsLabel := "Direct"
		if stops == 1 {
			stopsLabel = "1 stop"
		} else if stops > 1 {
			stopsLabel = fmt.Sprintf("%d stops", stops)
		}

		depHour := departureHours[i%len(departureHours)]
		depMinute := (i * 15) % 60
		arrHour := (depHour + hours) % 24

		out = append(out, Flight{
			ID:            fmt.Sprintf("flight-%d", i+1),
			Airline:       c.name,
			Logo:          c.logo,
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
			ReturnDate:    req.ReturnDate,
			Price:         price * req.Passengers,
			Currency:      "USD",
			Duration:      fmt.Sprintf("%dh", hours),
			Stops:         stopsLabel,
			DepartureTime: fmt.Sprintf("%02d:%02d", depHour, depMinute),
			ArrivalTime:   fmt.Sprintf("%02d:%02d", arrHour, depMinute),
			Passengers:    req.Passengers,
			BookingURL: "https://www.google.com/travel/flights?q=" +
				url.QueryEscape(req.Origin+" to "+req.Destination),
		})
	}
	return out, nil
}
