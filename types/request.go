package types

type IngestRequest struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

type RetrieveRequest struct {
	Query string `json:"query"`
	TopN  int    `json:"top_n,omitempty"`
}
