package dto

type TrafficEventResponse struct {
	Road        string    `json:"road"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Location    []float64 `json:"location,omitempty"` // [lng, lat]
}

type ListTrafficEventsResponse struct {
	Count  int                    `json:"count"`
	Events []TrafficEventResponse `json:"events"`
}
