package dto

type HealthResponse struct {
	Status   string          `json:"status"`
	Features map[string]bool `json:"features"`
}
