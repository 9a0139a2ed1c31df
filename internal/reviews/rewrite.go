package reviews

import "time"

// Rewrite records one completed rewrite, with snapshot keys for the
// submitted and generated code.
type Rewrite struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Language    string    `json:"language"`
	OriginalKey string    `json:"originalKey,omitempty"`
	ResultKey   string    `json:"resultKey,omitempty"`
	GistURL     string    `json:"gistUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
