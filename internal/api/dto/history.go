package dto

import "time"

type SearchEntryResponse struct {
	StartAddress string    `json:"start_address"`
	EndAddress   string    `json:"end_address"`
	SearchedAt   time.Time `json:"searched_at"`
}

type ListHistoryResponse struct {
	SessionID string                `json:"session_id"`
	Searches  []SearchEntryResponse `json:"searches"`
}
