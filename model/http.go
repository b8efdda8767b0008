package model

// HeldKey describes one currently sounding key in a state snapshot.
type HeldKey struct {
	Key     string  `json:"key"`
	Channel uint8   `json:"channel"`
	Pitches []uint8 `json:"pitches"`
}

// StateSnapshot is what the monitor endpoint serves.
type StateSnapshot struct {
	Session    string    `json:"session"`
	Layout     string    `json:"layout"`
	Held       []HeldKey `json:"held"`
	EventCount uint64    `json:"event_count"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
