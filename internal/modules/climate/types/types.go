package types

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// DateLayout is the calendar date format used by the dataset and the URL parameters.
const DateLayout = "2006-01-02"

// Measurement is one station's observation on a date. Precipitation may be missing.
// The precipitation listing does not select tobs, so TemperatureObservation is
// left zero there.
type Measurement struct {
	ID                     int64    `json:"id"`
	StationID              string   `json:"station"`
	Date                   string   `json:"date"`
	Precipitation          *float64 `json:"prcp"`
	TemperatureObservation float64  `json:"tobs"`
}

// Station is a row of the station table. Missing coordinates read as zero.
type Station struct {
	ID        int64   `json:"id"`
	StationID string  `json:"station"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// DateRange is an inclusive window. A zero End leaves the window open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) StartString() string {
	return r.Start.Format(DateLayout)
}

func (r DateRange) EndString() string {
	return r.End.Format(DateLayout)
}

func (r DateRange) OpenEnded() bool {
	return r.End.IsZero()
}

// TemperatureSummary encodes as the bare array [min, max, avg]. Fields are nil
// when no observation matched.
type TemperatureSummary struct {
	Min *float64
	Max *float64
	Avg *float64
}

func (s TemperatureSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]*float64{s.Min, s.Max, s.Avg})
}

// PrecipitationByDate groups precipitation values by date, keeping dates in the
// order they were first seen and values in the order they were added.
type PrecipitationByDate struct {
	m *orderedmap.OrderedMap[string, []*float64]
}

func NewPrecipitationByDate() *PrecipitationByDate {
	return &PrecipitationByDate{m: orderedmap.NewOrderedMap[string, []*float64]()}
}

func (p *PrecipitationByDate) Add(date string, value *float64) {
	values, _ := p.m.Get(date)
	p.m.Set(date, append(values, value))
}

func (p *PrecipitationByDate) Get(date string) ([]*float64, bool) {
	return p.m.Get(date)
}

func (p *PrecipitationByDate) Dates() []string {
	out := make([]string, 0, p.m.Len())
	for el := p.m.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

func (p *PrecipitationByDate) Len() int {
	return p.m.Len()
}

func (p *PrecipitationByDate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for el := p.m.Front(); el != nil; el = el.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		values, err := json.Marshal(el.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
