package google

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/foxseedlab/edittime/internal/document"
	"google.golang.org/api/drive/v3"
)

const (
	driveListPageSize = 1000
	driveListFields   = "nextPageToken, files(id, name, modifiedTime)"
)

type DriveDocumentSource struct {
	service *drive.Service
	orderBy string
}

func NewDriveDocumentSource(service *drive.Service, orderBy string) document.Source {
	return &DriveDocumentSource{
		service: service,
		orderBy: strings.TrimSpace(orderBy),
	}
}

func (s *DriveDocumentSource) ListDocuments(ctx context.Context, criteria document.Criteria) ([]document.Document, error) {
	call := s.service.Files.List().
		Q(buildFilesQuery(criteria)).
		Fields(driveListFields).
		PageSize(driveListPageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)
	if s.orderBy != "" {
		call = call.OrderBy(s.orderBy)
	}

	var docs []document.Document
	err := call.Pages(ctx, func(page *drive.FileList) error {
		for _, f := range page.Files {
			if f == nil || f.Id == "" {
				continue
			}
			docs = append(docs, document.Document{
				ID:           f.Id,
				Name:         f.Name,
				ModifiedTime: parseRFC3339(f.ModifiedTime),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("drive files listed", "files", len(docs))
	return docs, nil
}

func buildFilesQuery(criteria document.Criteria) string {
	clauses := []string{"trashed = false"}
	if criteria.MimeType != "" {
		clauses = append(clauses, fmt.Sprintf("mimeType = '%s'", escapeQueryValue(criteria.MimeType)))
	}
	if !criteria.ModifiedAfter.IsZero() {
		clauses = append(clauses, fmt.Sprintf("modifiedTime > '%s'", criteria.ModifiedAfter.UTC().Format(time.RFC3339)))
	}
	return strings.Join(clauses, " and ")
}

func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}

func parseRFC3339(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
