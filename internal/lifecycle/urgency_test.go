package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dose struct {
	id   string
	next *time.Time
}

func (d dose) NextDose() *time.Time { return d.next }

func day(t time.Time, offset int) *time.Time {
	v := t.AddDate(0, 0, offset)
	return &v
}

func TestClassify(t *testing.T) {
	today := time.Date(2025, 3, 15, 9, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		next *time.Time
		want Urgency
	}{
		{name: "absent", next: nil, want: UrgencyUndated},
		{name: "exactly today", next: day(today, 0), want: UrgencyUrgent},
		{name: "yesterday", next: day(today, -1), want: UrgencyUrgent},
		{name: "long overdue", next: day(today, -400), want: UrgencyUrgent},
		{name: "tomorrow", next: day(today, 1), want: UrgencyUpcoming},
		{name: "29 days", next: day(today, 29), want: UrgencyUpcoming},
		{name: "30 days inclusive", next: day(today, 30), want: UrgencyUpcoming},
		{name: "31 days", next: day(today, 31), want: UrgencyOnTime},
		{name: "90 days", next: day(today, 90), want: UrgencyOnTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.next, today))
		})
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	// DATE de Postgres llega como medianoche UTC.
	next := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, UrgencyUrgent, Classify(&next, today))

	later := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, UrgencyUpcoming, Classify(&later, today))
}

func TestClassify_TodayIsFarmCalendarDay(t *testing.T) {
	guayaquil := time.FixedZone("ECT", -5*60*60)

	// 20:00 del 15 en la finca ya es el 16 en UTC.
	instant := time.Date(2025, 3, 15, 20, 0, 0, 0, guayaquil)
	next := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, UrgencyUpcoming, Classify(&next, instant))
	assert.Equal(t, UrgencyUrgent, Classify(&next, instant.UTC()))
}

func TestClockIn(t *testing.T) {
	guayaquil := time.FixedZone("ECT", -5*60*60)

	assert.Equal(t, guayaquil, ClockIn(guayaquil)().Location())
	assert.Equal(t, time.Local, ClockIn(nil)().Location())
}

func TestClassify_UndatedRegardlessOfToday(t *testing.T) {
	for _, today := range []time.Time{
		time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
		time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC),
	} {
		assert.Equal(t, UrgencyUndated, Classify(nil, today))
	}
}

func TestDaysOverdue(t *testing.T) {
	today := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)

	n, ok := DaysOverdue(day(today, -3), today)
	require.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = DaysOverdue(day(today, 10), today)
	require.True(t, ok)
	assert.Equal(t, -10, n)

	_, ok = DaysOverdue(nil, today)
	assert.False(t, ok)
}

func TestGroupByUrgency_EndToEnd(t *testing.T) {
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	batch := []dose{
		{id: "ontime", next: day(today, 90)},
		{id: "undated"},
		{id: "upcoming", next: day(today, 10)},
		{id: "urgent", next: day(today, -1)},
	}

	want := map[string]Urgency{
		"urgent":   UrgencyUrgent,
		"upcoming": UrgencyUpcoming,
		"ontime":   UrgencyOnTime,
		"undated":  UrgencyUndated,
	}
	for _, d := range batch {
		assert.Equal(t, want[d.id], Classify(d.next, today), d.id)
	}

	b := GroupByUrgency(batch, today)
	require.Equal(t, len(batch), b.Len())

	ids := func(ds []dose) []string {
		out := make([]string, 0, len(ds))
		for _, d := range ds {
			out = append(out, d.id)
		}
		return out
	}
	assert.Equal(t, []string{"urgent", "upcoming", "ontime"}, ids(b.BySeverity()))
	assert.Equal(t, []string{"undated"}, ids(b.Undated))
	assert.Equal(t, map[Urgency]int{
		UrgencyUrgent:   1,
		UrgencyUpcoming: 1,
		UrgencyOnTime:   1,
		UrgencyUndated:  1,
	}, b.Counts())
}

func TestGroupByUrgency_OrdersWithinBucketAndKeepsInput(t *testing.T) {
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	batch := []dose{
		{id: "b", next: day(today, -1)},
		{id: "a", next: day(today, -20)},
		{id: "c", next: day(today, 0)},
	}

	b := GroupByUrgency(batch, today)
	require.Len(t, b.Urgent, 3)
	assert.Equal(t, "a", b.Urgent[0].id)
	assert.Equal(t, "b", b.Urgent[1].id)
	assert.Equal(t, "c", b.Urgent[2].id)

	// el lote original no se reordena
	assert.Equal(t, "b", batch[0].id)
}

func TestGroupByUrgency_EmptyBatch(t *testing.T) {
	b := GroupByUrgency([]dose{}, time.Now())
	assert.Equal(t, 0, b.Len())
	assert.NotNil(t, b.Urgent)
	assert.NotNil(t, b.Undated)
	assert.Empty(t, b.BySeverity())
}

func TestSortByNextDose_NullsLast(t *testing.T) {
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	ds := []dose{
		{id: "none"},
		{id: "late", next: day(today, 5)},
		{id: "early", next: day(today, -5)},
	}
	SortByNextDose(ds)
	assert.Equal(t, "early", ds[0].id)
	assert.Equal(t, "late", ds[1].id)
	assert.Equal(t, "none", ds[2].id)
}

func TestUrgenciesBySeverity(t *testing.T) {
	assert.Less(t, UrgencyUrgent.Severity(), UrgencyUpcoming.Severity())
	assert.Less(t, UrgencyOnTime.Severity(), UrgencyUndated.Severity())
	assert.Equal(t, []Urgency{UrgencyUrgent, UrgencyUpcoming, UrgencyOnTime, UrgencyUndated}, Urgencies())
}
