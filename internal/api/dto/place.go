package dto

type SuggestionResponse struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

type ListSuggestionsResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}
