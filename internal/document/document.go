package document

import (
	"context"
	"time"
)

const GoogleDocsMimeType = "application/vnd.google-apps.document"

type Document struct {
	ID           string
	Name         string
	ModifiedTime time.Time
}

// Criteria selects candidate documents by content type and modification time.
type Criteria struct {
	MimeType      string
	ModifiedAfter time.Time
}

type Source interface {
	ListDocuments(ctx context.Context, criteria Criteria) ([]Document, error)
}
