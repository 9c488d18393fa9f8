package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	zero, err := ParseDay("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ParseDay("01/03/2024")
	assert.Error(t, err)

	_, err = ParseDay("2024-13-40")
	assert.Error(t, err)
}

func TestDayAddDaysRollsOver(t *testing.T) {
	cases := []struct {
		start string
		days  int
		want  string
	}{
		{"2024-01-30", 10, "2024-02-09"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-12-28", 7, "2025-01-04"},
		{"2024-03-04", -3, "2024-03-01"},
	}
	for _, tc := range cases {
		d, err := ParseDay(tc.start)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d.AddDays(tc.days).String(), "%s + %d", tc.start, tc.days)
	}
}

func TestDayComparisons(t *testing.T) {
	a, _ := ParseDay("2024-03-01")
	b, _ := ParseDay("2024-03-04")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDay(2024, time.March, 1)))
}

func TestDayJSONRoundTrip(t *testing.T) {
	type wrapper struct {
		When Day `json:"when"`
	}

	data, err := json.Marshal(wrapper{When: NewDay(2024, time.March, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2024-03-01"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-03-01", decoded.When.String())

	// Absent days serialize as null and come back as zero.
	data, err = json.Marshal(wrapper{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":null}`, string(data))

	var empty wrapper
	require.NoError(t, json.Unmarshal(data, &empty))
	assert.True(t, empty.When.IsZero())
}

func TestDayScanAndValue(t *testing.T) {
	var d Day
	require.NoError(t, d.Scan("2024-03-01"))
	assert.Equal(t, "2024-03-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	require.NoError(t, d.Scan(time.Date(2024, time.March, 1, 15, 30, 0, 0, time.Local)))
	assert.Equal(t, "2024-03-01", d.String())

	v, err := NewDay(2024, time.March, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", v)

	v, err = Day{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
