package models

// SearchMetadata reports how the fan-out went for one search.
type SearchMetadata struct {
	TotalResults    int      `json:"total_results"`
	GroupsQueried   int      `json:"groups_queried"`
	GroupsSucceeded int      `json:"groups_succeeded"`
	GroupsFailed    int      `json:"groups_failed"`
	FailedGroups    []string `json:"failed_groups,omitempty"`
	SearchTimeMs    int64    `json:"search_time_ms"`
}

// SearchResponse wraps a stored quotation with fan-out metadata.
type SearchResponse struct {
	Metadata  SearchMetadata `json:"metadata"`
	Quotation *Quotation     `json:"quotation"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
