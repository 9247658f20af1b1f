package google

import (
	"context"

	"github.com/foxseedlab/edittime/internal/activity"
	"google.golang.org/api/driveactivity/v2"
)

const (
	activityPageSize   = 100
	activityEditFilter = "detail.action_detail_case:EDIT"
	driveItemPrefix    = "items/"
)

type DriveActivitySource struct {
	service *driveactivity.Service
}

func NewDriveActivitySource(service *driveactivity.Service) activity.Source {
	return &DriveActivitySource{service: service}
}

func (s *DriveActivitySource) ListRecords(ctx context.Context, documentID string) ([]activity.Record, error) {
	req := &driveactivity.QueryDriveActivityRequest{
		ItemName: driveItemPrefix + documentID,
		Filter:   activityEditFilter,
		PageSize: activityPageSize,
	}
	var records []activity.Record
	err := s.service.Activity.Query(req).Pages(ctx, func(resp *driveactivity.QueryDriveActivityResponse) error {
		for _, a := range resp.Activities {
			if a == nil {
				continue
			}
			records = append(records, decodeActivity(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// decodeActivity maps the API's timestamp/timeRange union onto a Record.
// Unparseable values decode as absent.
func decodeActivity(a *driveactivity.DriveActivity) activity.Record {
	var rec activity.Record
	if ts := parseRFC3339(a.Timestamp); !ts.IsZero() {
		rec.Timestamp = &ts
	}
	if a.TimeRange != nil {
		end := parseRFC3339(a.TimeRange.EndTime)
		if !end.IsZero() {
			rec.TimeRange = &activity.TimeRange{
				Start: parseRFC3339(a.TimeRange.StartTime),
				End:   end,
			}
		}
	}
	return rec
}
