package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type IngestResponse struct {
	OriginalName string `json:"original_name,omitempty"`
	Chunks       int    `json:"chunks"`
	Images       int    `json:"images"`
}

type RetrieveResponse struct {
	Query   string         `json:"query"`
	Results []RankedResult `json:"results"`
}

type ProcessingDocumentStatus struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Source   string  `json:"source,omitempty"`
	Progress float64 `json:"progress,omitempty"`
}
