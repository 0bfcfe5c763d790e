package archive_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/aura/app/aura/pkg/archive"
	"github.com/iWorld-y/aura/app/aura/pkg/model"
)

func saved(id, title, summary, ts string) model.SavedReport {
	return model.SavedReport{
		AnalysisResult: model.AnalysisResult{Title: title, Summary: summary},
		ReportID:       id,
		Timestamp:      ts,
	}
}

func ids(reports []model.SavedReport) []string {
	out := []string{}
	for _, r := range reports {
		out = append(out, r.ReportID)
	}
	return out
}

func day(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := archive.ParseDay(s)
	require.NoError(t, err)
	return &d
}

func TestQuery_DateWindow(t *testing.T) {
	reports := []model.SavedReport{
		saved("feb", "c", "", "2025-02-01T08:00:00.000Z"),
		saved("mid-jan", "b", "", "2025-01-15T08:00:00.000Z"),
		saved("new-year", "a", "", "2025-01-01T08:00:00.000Z"),
	}

	got := archive.Query(reports, "", day(t, "2025-01-10"), day(t, "2025-01-31"))
	assert.Equal(t, []string{"mid-jan"}, ids(got))
}

func TestQuery_BoundsAreInclusive(t *testing.T) {
	reports := []model.SavedReport{
		saved("start-midnight", "", "", "2025-01-10T00:00:00.000Z"),
		saved("end-last-ms", "", "", "2025-01-31T23:59:59.999Z"),
		saved("after-end", "", "", "2025-02-01T00:00:00.000Z"),
		saved("before-start", "", "", "2025-01-09T23:59:59.999Z"),
	}

	got := archive.Query(reports, "", day(t, "2025-01-10"), day(t, "2025-01-31"))
	assert.Equal(t, []string{"start-midnight", "end-last-ms"}, ids(got))
}

func TestQuery_OpenEndedWindow(t *testing.T) {
	reports := []model.SavedReport{
		saved("b", "", "", "2025-01-15T08:00:00.000Z"),
		saved("a", "", "", "2025-01-01T08:00:00.000Z"),
		saved("bad", "", "", "yesterday"),
	}

	assert.Equal(t, []string{"b"}, ids(archive.Query(reports, "", day(t, "2025-01-10"), nil)))
	assert.Equal(t, []string{"a"}, ids(archive.Query(reports, "", nil, day(t, "2025-01-10"))))
	assert.Equal(t, []string{"b", "a", "bad"}, ids(archive.Query(reports, "", nil, nil)))
}

func TestQuery_Text(t *testing.T) {
	reports := []model.SavedReport{
		saved("darfur", "Darfur Displacement Surge", "fuel shortages", "2025-01-15T08:00:00.000Z"),
		saved("kivu", "North Kivu Access", "corridor blocked", "2025-01-16T08:00:00.000Z"),
	}

	tests := []struct {
		text string
		want []string
	}{
		{text: "darfur", want: []string{"darfur"}},
		{text: "FUEL", want: []string{"darfur"}},
		{text: "kivu", want: []string{"kivu"}},
		{text: "cholera", want: []string{}},
		{text: "", want: []string{"darfur", "kivu"}},
		{text: "  ", want: []string{}},
		{text: "fuel shortages ", want: []string{}},
		{text: " kivu", want: []string{"kivu"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(archive.Query(reports, tt.text, nil, nil)))
		})
	}

	assert.Empty(t, archive.Query(reports[:1], "kivu", nil, nil))
}

func TestQuery_TextAndDateCombine(t *testing.T) {
	reports := []model.SavedReport{
		saved("darfur-feb", "Darfur update", "", "2025-02-03T08:00:00.000Z"),
		saved("darfur-jan", "Darfur Displacement Surge", "", "2025-01-15T08:00:00.000Z"),
		saved("kivu-jan", "North Kivu Access", "", "2025-01-16T08:00:00.000Z"),
	}

	got := archive.Query(reports, "darfur", day(t, "2025-01-01"), day(t, "2025-01-31"))
	assert.Equal(t, []string{"darfur-jan"}, ids(got))
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	reports := []model.SavedReport{
		saved("b", "Beta", "", "2025-01-15T08:00:00.000Z"),
		saved("a", "Alpha", "", "2025-01-01T08:00:00.000Z"),
	}
	snapshot := append([]model.SavedReport(nil), reports...)

	got := archive.Query(reports, "alpha", nil, nil)
	require.Len(t, got, 1)
	got[0].Title = "changed"

	assert.Equal(t, snapshot, reports)
}

func TestParseDay(t *testing.T) {
	d, err := archive.ParseDay(" 2025-01-31 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = archive.ParseDay("31/01/2025")
	assert.Error(t, err)

	assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 999000000, time.UTC), archive.EndOfDay(d))
}
