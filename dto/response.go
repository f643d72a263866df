package dto

// ErrorResponseDTO is the shared error response shape.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"Method not allowed"`
}

// EnrichResponseDTO reports one batch enrichment pass.
type EnrichResponseDTO struct {
	Message       string   `json:"message"`
	EnrichedCount int      `json:"enriched_count"`
	IDs           []string `json:"ids,omitempty"`
}
