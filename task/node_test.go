package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskgrapher/clock"
)

func newTestGraph() (*Graph, *clock.FakeClock) {
	c := clock.Fake(time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC))
	return NewGraph(WithClock(c)), c
}

func TestNew_InitialState(t *testing.T) {
	g, c := newTestGraph()

	n, err := g.New("Test Node")
	require.NoError(t, err)

	assert.Equal(t, "Test Node", n.Value())
	assert.Equal(t, c.Now(), n.Created())
	assert.False(t, n.Completed())
	assert.Empty(t, n.ChildIDs())
	assert.Empty(t, n.ParentIDs())
	assert.Equal(t, DefaultMaxChildren, n.MaxChildren())
	assert.Equal(t, DefaultMaxParents, n.MaxParents())

	_, ok := n.DueDate()
	assert.False(t, ok)
	_, ok = n.DueTime()
	assert.False(t, ok)
}

func TestNew_WithDueDateAndTime(t *testing.T) {
	g, _ := newTestGraph()
	due, err := NewDate(2024, time.December, 25)
	require.NoError(t, err)
	at, err := NewTimeOfDay(17, 30, 0)
	require.NoError(t, err)

	n, err := g.New("Wrap presents", WithDueDate(due), WithDueTime(at))
	require.NoError(t, err)

	got, ok := n.DueDate()
	require.True(t, ok)
	assert.Equal(t, due, got)
	gotTime, ok := n.DueTime()
	require.True(t, ok)
	assert.Equal(t, at, gotTime)
}

func TestNew_DueTimeWithoutDate(t *testing.T) {
	g, _ := newTestGraph()
	n, err := g.New("Stretch", WithDueTime(TimeOfDay{Hour: 7}))
	require.NoError(t, err)

	_, hasDate := n.DueDate()
	assert.False(t, hasDate)
	_, hasTime := n.DueTime()
	assert.True(t, hasTime)
}

func TestNew_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		value string
		opts  []NodeOption
		want  error
	}{
		{"empty value", "", nil, ErrEmptyValue},
		{"blank value", "   \t", nil, ErrEmptyValue},
		{"impossible date", "x", []NodeOption{WithDueDate(Date{Year: 2023, Month: time.February, Day: 30})}, ErrInvalidDate},
		{"zero date", "x", []NodeOption{WithDueDate(Date{})}, ErrInvalidDate},
		{"hour out of range", "x", []NodeOption{WithDueTime(TimeOfDay{Hour: 24})}, ErrInvalidTime},
		{"negative minute", "x", []NodeOption{WithDueTime(TimeOfDay{Minute: -1})}, ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGraph()
			n, err := g.New(tt.value, tt.opts...)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, n)
			assert.Equal(t, 0, g.Len())
		})
	}
}

func TestSetValue(t *testing.T) {
	g, _ := newTestGraph()
	n, err := g.New("Test Node")
	require.NoError(t, err)

	got, err := n.SetValue("New Value")
	require.NoError(t, err)
	assert.Equal(t, "New Value", got)
	assert.Equal(t, "New Value", n.Value())

	got, err = n.SetValue("")
	assert.ErrorIs(t, err, ErrEmptyValue)
	assert.Equal(t, "New Value", got)
	assert.Equal(t, "New Value", n.Value())
}

func TestChangeDueDateAndTime(t *testing.T) {
	g, c := newTestGraph()
	tomorrow := DateOf(c.Now()).AddDays(1)
	afternoon := TimeOfDay{Hour: 14, Minute: 30}

	n, err := g.New("Parent Task", WithDueDate(tomorrow), WithDueTime(afternoon))
	require.NoError(t, err)

	dayAfter, err := n.SetDueDate(tomorrow.AddDays(1))
	require.NoError(t, err)
	got, _ := n.DueDate()
	assert.Equal(t, dayAfter, got)
	assert.Equal(t, "2026-03-16", got.String())

	evening := TimeOfDay{Hour: 19, Minute: 30}
	_, err = n.SetDueTime(evening)
	require.NoError(t, err)
	gotTime, _ := n.DueTime()
	assert.Equal(t, evening, gotTime)

	_, err = n.SetDueDate(Date{Year: 2024, Month: 13, Day: 1})
	assert.ErrorIs(t, err, ErrInvalidDate)
	got, _ = n.DueDate()
	assert.Equal(t, dayAfter, got, "failed set must not change the stored date")

	n.ClearDueDate()
	n.ClearDueTime()
	_, ok := n.DueDate()
	assert.False(t, ok)
	_, ok = n.DueTime()
	assert.False(t, ok)
}

func TestParseDue(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.January, Day: 1}, d)

	_, err = ParseDate("01/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("2024-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	tm, err := ParseTimeOfDay("14:45")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 45}, tm)
	assert.Equal(t, "14:45", tm.String())

	tm, err = ParseTimeOfDay("14:45:09")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 14, Minute: 45, Second: 9}, tm)
	assert.Equal(t, "14:45:09", tm.String())

	_, err = ParseTimeOfDay("2pm")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestSetCaps(t *testing.T) {
	g, _ := newTestGraph()
	n, err := g.New("n")
	require.NoError(t, err)

	assert.ErrorIs(t, n.SetMaxChildren(0), ErrInvalidCap)
	assert.ErrorIs(t, n.SetMaxParents(-3), ErrInvalidCap)
	require.NoError(t, n.SetMaxChildren(2))
	require.NoError(t, n.SetMaxParents(1))
	assert.Equal(t, 2, n.MaxChildren())
	assert.Equal(t, 1, n.MaxParents())
}

func TestCompleted(t *testing.T) {
	g, _ := newTestGraph()
	n, err := g.New("n")
	require.NoError(t, err)

	n.SetCompleted(true)
	assert.True(t, n.Completed())
	n.SetCompleted(false)
	assert.False(t, n.Completed())
}
