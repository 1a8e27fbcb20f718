package models

// Snapshot is the full state of all collections at a point in time.
// Snapshots are deep copies; holders may read them freely without observing
// later mutations.
type Snapshot struct {
	Students  []Student  `json:"students"`
	Groups    []Group    `json:"groups"`
	Payments  []Payment  `json:"payments"`
	Contracts []Contract `json:"contracts"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
