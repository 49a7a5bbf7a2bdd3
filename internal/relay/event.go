package relay

// Event types emitted to the downstream client. The terminal sentinel is not
// an Event; the sink's Done callback owns it so it cannot be emitted twice.
const (
	EventText    = "text"
	EventOptions = "options"
)

// Option is one normalized result item shown to the patient (a hospital,
// flight, or cost band). Normalization is stable field renaming only; the
// resolver neither reorders nor filters what the capability returned.
type Option struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	Price             string `json:"price,omitempty"`
	ImageURL          string `json:"imageUrl,omitempty"`
	Badge             string `json:"badge,omitempty"`
	Details           string `json:"details,omitempty"`
	ContactEmail      string `json:"contact_email,omitempty"`
	EstimatedCostLow  int    `json:"estimated_cost_low,omitempty"`
	EstimatedCostHigh int    `json:"estimated_cost_high,omitempty"`
	BookingURL        string `json:"bookingUrl,omitempty"`
}

// Event is one downstream client event.
type Event struct {
	Type    string   `json:"type"`
	Content string   `json:"content,omitempty"`
	Options []Option `json:"options,omitempty"`
}

// Sink receives relay output. Send is called in emission order; Done is
// called exactly once, last, on every path.
type Sink interface {
	Send(event Event) error
	Done()
}
