package volunteers

import (
	"context"
	"testing"

	"github.com/mmcdole/kindred/internal/domain"
	"github.com/nalgeon/be"
)

type fakeClient struct {
	domain.VolunteerClient
	hours map[string]float64
}

func (f *fakeClient) ListVolunteers(context.Context, domain.ListQuery) ([]domain.Volunteer, domain.Pagination, error) {
	return []domain.Volunteer{
		{VolunteerID: "v1", Name: "Ada Park", Status: "active", HoursTotal: f.hours["v1"]},
		{VolunteerID: "v2", Name: "Luis Ortega", Status: "active", HoursTotal: f.hours["v2"]},
	}, domain.Pagination{Total: 2, Page: 1, Limit: 20, TotalPages: 1}, nil
}

func (f *fakeClient) LogVolunteerHours(_ context.Context, id string, hours float64) (domain.Volunteer, error) {
	f.hours[id] += hours
	return domain.Volunteer{VolunteerID: id, Name: "Ada Park", Status: "active", HoursTotal: f.hours[id]}, nil
}

func TestLogHoursReplacesTotal(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{hours: map[string]float64{"v1": 10}}
	svc := NewService(client, nil)
	be.Err(t, svc.FetchVolunteers(ctx, domain.ListQuery{}), nil)
	svc.Volunteers().Select("v1")

	_, err := svc.LogHours(ctx, "v1", 2.5)
	be.Err(t, err, nil)
	got, _ := svc.Volunteers().Get("v1")
	be.Equal(t, got.HoursTotal, 12.5)
	sel, _ := svc.Volunteers().Selected()
	be.Equal(t, sel.HoursTotal, 12.5)

	other, _ := svc.Volunteers().Get("v2")
	be.Equal(t, other.HoursTotal, 0.0)
}
