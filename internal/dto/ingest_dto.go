package dto

const (
	SourcePageTitle = "page_title"
	SourceURLSlug   = "url_slug"
)

type IngestRequest struct {
	URL string `json:"url"`
}

// IngestedJobDraft is the normalized, unsaved job posting produced from a
// URL. IsFallback marks a draft that did not come from a canonical listing;
// IsError additionally marks one built after a failure.
type IngestedJobDraft struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description"`
	ApplyLink   string `json:"applyLink"`
	Location    string `json:"location"`
	Logo        string `json:"logo,omitempty"`
	PostedAt    string `json:"postedAt,omitempty"`
	IsFallback  bool   `json:"isFallback"`
	IsError     bool   `json:"isError,omitempty"`
	Error       string `json:"error,omitempty"`
	Source      string `json:"source"`
}
