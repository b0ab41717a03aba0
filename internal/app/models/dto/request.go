package dto

// IDsRequest carries a set of record ids, used by bulk actions and
// many-to-many replacement.
type IDsRequest struct {
	IDs []int64 `json:"ids"`
}

// IDsResponse lists the ids of a many-to-many set
type IDsResponse struct {
	IDs []int64 `json:"ids"`
}

// ActionRequest runs a console action on the selected records
type ActionRequest struct {
	Action string  `json:"action" binding:"required"`
	IDs    []int64 `json:"ids"`
}
