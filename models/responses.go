package models

// BrAPIResponse is the envelope every BrAPI v2 endpoint answers with:
// a metadata block carrying pagination and status messages, and a result
// block whose shape depends on the endpoint.
type BrAPIResponse struct {
	Metadata BrAPIMetadata `json:"metadata"`
	Result   BrAPIResult   `json:"result"`
}

// BrAPIMetadata is the metadata block of a BrAPI response.
type BrAPIMetadata struct {
	Pagination BrAPIPagination `json:"pagination"`
	Status     []BrAPIStatus   `json:"status"`
	Datafiles  []string        `json:"datafiles"`
}

// BrAPIPagination describes the page window of a list response.
type BrAPIPagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
}

// BrAPIStatus is one informational or error message in the metadata block.
type BrAPIStatus struct {
	Message     string `json:"message"`
	MessageType string `json:"messageType"`
}

// BrAPIResult wraps the data list of a BrAPI list response.
type BrAPIResult struct {
	Data any `json:"data"`
}

// NewBrAPIListResponse assembles the standard BrAPI list envelope around data.
func NewBrAPIListResponse(data any, page, pageSize, totalCount int) BrAPIResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return BrAPIResponse{
		Metadata: BrAPIMetadata{
			Pagination: BrAPIPagination{
				CurrentPage: page,
				PageSize:    pageSize,
				TotalCount:  totalCount,
				TotalPages:  totalPages,
			},
			Status:    []BrAPIStatus{{Message: "Request accepted, response successful", MessageType: "INFO"}},
			Datafiles: []string{},
		},
		Result: BrAPIResult{Data: data},
	}
}
