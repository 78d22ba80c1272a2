package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestTemperatureSummary_MarshalJSON(t *testing.T) {
	t.Run("values", func(t *testing.T) {
		b, err := json.Marshal(TemperatureSummary{Min: ptr(60), Max: ptr(70), Avg: ptr(65)})
		require.NoError(t, err)
		assert.JSONEq(t, `[60, 70, 65.0]`, string(b))
	})

	t.Run("no rows matched", func(t *testing.T) {
		b, err := json.Marshal(TemperatureSummary{})
		require.NoError(t, err)
		assert.Equal(t, `[null,null,null]`, string(b))
	})
}

func TestPrecipitationByDate_KeepsFirstSeenOrder(t *testing.T) {
	p := NewPrecipitationByDate()
	p.Add("2017-01-02", ptr(0.5))
	p.Add("2017-01-01", nil)
	p.Add("2017-01-02", ptr(0.1))
	p.Add("2016-12-31", ptr(0))

	assert.Equal(t, []string{"2017-01-02", "2017-01-01", "2016-12-31"}, p.Dates())
	assert.Equal(t, 3, p.Len())

	values, ok := p.Get("2017-01-02")
	require.True(t, ok)
	require.Len(t, values, 2)
	assert.Equal(t, 0.5, *values[0])
	assert.Equal(t, 0.1, *values[1])

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"2017-01-02":[0.5,0.1],"2017-01-01":[null],"2016-12-31":[0]}`, string(b))
}

func TestPrecipitationByDate_Empty(t *testing.T) {
	b, err := json.Marshal(NewPrecipitationByDate())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestDateRange(t *testing.T) {
	start := time.Date(2016, 8, 23, 0, 0, 0, 0, time.UTC)

	open := DateRange{Start: start}
	assert.True(t, open.OpenEnded())
	assert.Equal(t, "2016-08-23", open.StartString())

	closed := DateRange{Start: start, End: start.AddDate(1, 0, 0)}
	assert.False(t, closed.OpenEnded())
	assert.Equal(t, "2017-08-23", closed.EndString())
}
