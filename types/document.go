package types

// DocumentFormat identifies the source format of an ingested document.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// Document is an ingestion request for a single source file. It lives only
// for the duration of one pipeline call and is never persisted.
type Document struct {
	Path   string
	Format DocumentFormat
}

// ExtractedImage is one image pulled out of a document. Filename is unique
// within the document and doubles as the placeholder token payload.
type ExtractedImage struct {
	Filename string
	Data     []byte
}

// ImageAnnotation replaces an image placeholder in the text stream. The json
// field names are a wire contract with downstream consumers that parse the
// [image_info]{...}[/image_info] tags out of chunk text.
type ImageAnnotation struct {
	Description string `json:"description"`
	ImgPath     string `json:"imgpath"`
}

// KnowledgeUnit is the atomic stored item: one text chunk plus its embedding.
type KnowledgeUnit struct {
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
	Metadata  Metadata  `json:"metadata"`
}

// Metadata contains additional document information
type Metadata struct {
	Title  string            `json:"title"`
	Source string            `json:"source"`
	Tags   []string          `json:"tags"`
	Custom map[string]string `json:"custom"`
}

// Candidate is a raw nearest-neighbor hit returned by the knowledge store,
// ordered only by the store's own distance metric (lower is more similar).
type Candidate struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
	Distance float32  `json:"distance"`
}

// RankedResult is a reranked candidate. Score is the reranker's relevance
// score; results produced by the degraded fallback carry a zero score.
type RankedResult struct {
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// DocumentServiceConfig contains configuration options for text chunking
type DocumentServiceConfig struct {
	MaxChunkSize int // Maximum chunk length in runes
	OverlapSize  int // Overlap between consecutive chunks in runes
}

// IngestRecord tracks one ingestion run for the transport layer.
type IngestRecord struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Source    string `bson:"source" json:"source"`
	Status    string `bson:"status" json:"status"`
	Chunks    int    `bson:"chunks" json:"chunks"`
	Images    int    `bson:"images" json:"images"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
	UpdatedAt int64  `bson:"updated_at" json:"updated_at"`
}

const (
	IngestStatusProcessing = "processing"
	IngestStatusCompleted  = "completed"
	IngestStatusFailed     = "failed"
)
