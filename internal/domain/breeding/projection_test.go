package breeding

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestExpectedDates(t *testing.T) {
	service := mustDate(t, "2024-01-01")

	assert.Equal(t, "2024-04-24", ExpectedFarrowing(service).Format(DateLayout))
	assert.Equal(t, "2024-01-22", ExpectedCheckup(service).Format(DateLayout))
}

func TestExpectedDates_IgnoreTimeOfDay(t *testing.T) {
	service := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-04-24", ExpectedFarrowing(service).Format(DateLayout))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 2, DaysBetween(mustDate(t, "2024-04-24"), mustDate(t, "2024-04-22")))
	assert.Equal(t, -3, DaysBetween(mustDate(t, "2024-01-22"), mustDate(t, "2024-01-25")))
	assert.Equal(t, 0, DaysBetween(mustDate(t, "2024-03-01"), mustDate(t, "2024-03-01")))
}

func TestFarrowingsDue_Window(t *testing.T) {
	services := []ServiceRecord{
		{EventID: "e1", SowID: "s1", SowStatus: StatusServed, ServiceDate: mustDate(t, "2024-01-01")},
	}

	cases := map[string]bool{
		"2024-04-20": false,
		"2024-04-21": true,
		"2024-04-22": true,
		"2024-04-24": true,
		"2024-04-27": true,
		"2024-04-28": false,
	}
	for d, want := range cases {
		got := slices.Collect(FarrowingsDue(mustDate(t, d), services))
		assert.Equal(t, want, len(got) == 1, "query %s", d)
	}
}

func TestFarrowingsDue_ReportsOffsetAndExpectedDate(t *testing.T) {
	services := []ServiceRecord{
		{EventID: "e1", SowID: "s1", SowStatus: StatusPregnant, ServiceDate: mustDate(t, "2024-01-01")},
	}

	got := slices.Collect(FarrowingsDue(mustDate(t, "2024-04-22"), services))
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].EventID)
	assert.Equal(t, "2024-04-24", got[0].ExpectedDate.Format(DateLayout))
	assert.Equal(t, 2, got[0].OffsetDays)
}

func TestCheckupsDue_WindowAndStatus(t *testing.T) {
	services := []ServiceRecord{
		{EventID: "e1", SowID: "s1", SowStatus: StatusServed, ServiceDate: mustDate(t, "2024-01-01")},
		{EventID: "e2", SowID: "s2", SowStatus: StatusPregnant, ServiceDate: mustDate(t, "2024-01-01")},
	}

	none := slices.Collect(CheckupsDue(mustDate(t, "2024-01-25"), services))
	assert.Empty(t, none)

	got := slices.Collect(CheckupsDue(mustDate(t, "2024-01-24"), services))
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].SowID)
	assert.Equal(t, -2, got[0].OffsetDays)

	got = slices.Collect(CheckupsDue(mustDate(t, "2024-01-20"), services))
	require.Len(t, got, 1)
}

func TestFarrowingsDue_DoesNotDeduplicate(t *testing.T) {
	services := []ServiceRecord{
		{EventID: "e1", SowID: "s1", SowStatus: StatusServed, ServiceDate: mustDate(t, "2024-01-01")},
		{EventID: "e2", SowID: "s1", SowStatus: StatusServed, ServiceDate: mustDate(t, "2024-01-02")},
	}

	got := slices.Collect(FarrowingsDue(mustDate(t, "2024-04-24"), services))
	assert.Len(t, got, 2)
}

func TestFarrowingsDue_StopsWhenConsumerStops(t *testing.T) {
	services := []ServiceRecord{
		{EventID: "e1", ServiceDate: mustDate(t, "2024-01-01")},
		{EventID: "e2", ServiceDate: mustDate(t, "2024-01-01")},
	}

	n := 0
	for range FarrowingsDue(mustDate(t, "2024-04-24"), services) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
