package documents

import "time"

// Document is a supporting file a user attached to their assessment.
type Document struct {
	ID         string    `json:"documentId"`
	UserID     string    `json:"-"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"storageKey"`
	CreatedAt  time.Time `json:"uploadedAt"`
}
