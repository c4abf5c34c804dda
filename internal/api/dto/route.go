package dto

import "time"

type RouteRequest struct {
	StartAddress string     `json:"start_address"`
	EndAddress   string     `json:"end_address"`
	DepartAt     *time.Time `json:"depart_at"`
	TrafficModel string     `json:"traffic_model"`
	MaxRoutes    int        `json:"max_routes"`
	SessionID    string     `json:"session_id"`
}

type PlaceResponse struct {
	PlaceID          string    `json:"place_id,omitempty"`
	FormattedAddress string    `json:"formatted_address"`
	Location         []float64 `json:"location"` // [lng, lat]
}

type RouteStepResponse struct {
	Instruction     string `json:"instruction"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

type RouteResponse struct {
	Rank                     int                 `json:"rank"`
	Color                    string              `json:"color"`
	Summary                  string              `json:"summary"`
	DistanceMeters           int                 `json:"distance_meters"`
	DistanceText             string              `json:"distance_text"`
	DurationSeconds          int                 `json:"duration_seconds"`
	DurationText             string              `json:"duration_text"`
	DurationInTrafficSeconds int                 `json:"duration_in_traffic_seconds"`
	DurationInTrafficText    string              `json:"duration_in_traffic_text"`
	TrafficImpactText        string              `json:"traffic_impact_text"`
	DelaySeconds             int                 `json:"delay_seconds"`
	DelayPercentage          float64             `json:"delay_percentage"`
	TrafficSeverity          string              `json:"traffic_severity"`
	EfficiencyScore          float64             `json:"efficiency_score"`
	Polyline                 string              `json:"polyline"`
	StartAddress             string              `json:"start_address"`
	EndAddress               string              `json:"end_address"`
	Warnings                 []string            `json:"warnings"`
	Steps                    []RouteStepResponse `json:"steps"`
}

type SummaryResponse struct {
	TotalRoutes         int     `json:"total_routes"`
	AverageTimeMinutes  float64 `json:"average_time_minutes"`
	AverageDistanceKm   float64 `json:"average_distance_km"`
	AverageDelayMinutes float64 `json:"average_delay_minutes"`
	MinTimeMinutes      float64 `json:"min_time_minutes"`
	MaxTimeMinutes      float64 `json:"max_time_minutes"`
}

type TimeSavingsResponse struct {
	MaxSavingsSeconds int     `json:"max_savings_seconds"`
	MaxSavingsMinutes float64 `json:"max_savings_minutes"`
	FastestSeconds    int     `json:"fastest_seconds"`
	SlowestSeconds    int     `json:"slowest_seconds"`
	FastestRouteTime  string  `json:"fastest_route_time"`
	SlowestRouteTime  string  `json:"slowest_route_time"`
}

func NewTimeSavingsResponse(savings, fastest, slowest int) *TimeSavingsResponse {
	return &TimeSavingsResponse{
		MaxSavingsSeconds: savings,
		MaxSavingsMinutes: minutes1(savings),
		FastestSeconds:    fastest,
		SlowestSeconds:    slowest,
		FastestRouteTime:  FormatDuration(fastest),
		SlowestRouteTime:  FormatDuration(slowest),
	}
}

type RejectedResponse struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type RoutesResponse struct {
	Start        PlaceResponse        `json:"start"`
	End          PlaceResponse        `json:"end"`
	DepartAt     time.Time            `json:"depart_at"`
	TrafficModel string               `json:"traffic_model"`
	BestRoute    *RouteResponse       `json:"best_route"`
	Routes       []RouteResponse      `json:"routes"`
	Summary      SummaryResponse      `json:"summary"`
	TimeSavings  *TimeSavingsResponse `json:"time_savings,omitempty"`
	Rejected     []RejectedResponse   `json:"rejected,omitempty"`
	Map          MapResponse          `json:"map"`
}

// Maximum "did you mean" entries returned with an address error.
const MaxAddressSuggestions = 5

// AddressErrorResponse is returned when an endpoint cannot be resolved inside
// the service area. Field is "start" or "end".
type AddressErrorResponse struct {
	Error       string   `json:"error"`
	Field       string   `json:"field"`
	Suggestions []string `json:"suggestions"`
}
