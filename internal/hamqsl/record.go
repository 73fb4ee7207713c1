package hamqsl

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// NA is the sentinel emitted for any feed field that is absent or
// unparseable. Clients of the JSON endpoint rely on it being a string,
// never null, never omitted.
const NA = "N/A"

// IntValue is an optional integer metric. Missing values marshal as the
// NA sentinel string, present ones as plain JSON numbers.
type IntValue struct {
	V       int
	Present bool
}

// MarshalJSON implements json.Marshaler.
func (v IntValue) MarshalJSON() ([]byte, error) {
	if !v.Present {
		return json.Marshal(NA)
	}
	return json.Marshal(v.V)
}

// String renders the value for display.
func (v IntValue) String() string {
	if !v.Present {
		return NA
	}
	return strconv.Itoa(v.V)
}

// FloatValue is an optional float metric with the same wire behavior as
// IntValue.
type FloatValue struct {
	V       float64
	Present bool
}

// MarshalJSON implements json.Marshaler.
func (v FloatValue) MarshalJSON() ([]byte, error) {
	if !v.Present {
		return json.Marshal(NA)
	}
	return json.Marshal(v.V)
}

// String renders the value for display.
func (v FloatValue) String() string {
	if !v.Present {
		return NA
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}

// ConditionTable is a two-level mapping (name -> sub-key -> condition
// string) that remembers first-appearance order of its outer keys so the
// JSON encoding matches the feed's row order. Duplicate (name, sub-key)
// pairs overwrite, last write wins.
type ConditionTable struct {
	names []string
	rows  map[string]*conditionRow
}

type conditionRow struct {
	keys []string
	vals map[string]string
}

// Set records a condition value.
func (t *ConditionTable) Set(name, key, value string) {
	if t.rows == nil {
		t.rows = make(map[string]*conditionRow)
	}
	row, ok := t.rows[name]
	if !ok {
		row = &conditionRow{vals: make(map[string]string)}
		t.rows[name] = row
		t.names = append(t.names, name)
	}
	if _, ok := row.vals[key]; !ok {
		row.keys = append(row.keys, key)
	}
	row.vals[key] = value
}

// Get returns the condition for (name, key), or "" when absent.
func (t *ConditionTable) Get(name, key string) string {
	row, ok := t.rows[name]
	if !ok {
		return ""
	}
	return row.vals[key]
}

// Names returns the outer keys in first-appearance order.
func (t *ConditionTable) Names() []string {
	return t.names
}

// Keys returns the sub-keys for name in first-appearance order.
func (t *ConditionTable) Keys(name string) []string {
	row, ok := t.rows[name]
	if !ok {
		return nil
	}
	return row.keys
}

// Len returns the number of outer keys.
func (t *ConditionTable) Len() int {
	return len(t.names)
}

// MarshalJSON encodes the table as nested objects, outer and inner keys
// both in insertion order.
func (t ConditionTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		row := t.rows[name]
		buf.WriteByte('{')
		for j, key := range row.keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, key); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeJSONString(&buf, row.vals[key]); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// SolarRecord is the canonical, always-complete view of one feed
// snapshot. Every scalar is defined: either a parsed value or NA.
// Field names and the electonflux spelling follow the feed.
type SolarRecord struct {
	Source        string         `json:"source"`
	Updated       string         `json:"updated"`
	SolarFlux     IntValue       `json:"solarflux"`
	AIndex        IntValue       `json:"aindex"`
	KIndex        IntValue       `json:"kindex"`
	KIndexNT      string         `json:"kindexnt"`
	XRay          string         `json:"xray"`
	Sunspots      IntValue       `json:"sunspots"`
	HeliumLine    FloatValue     `json:"heliumline"`
	ProtonFlux    IntValue       `json:"protonflux"`
	ElectonFlux   IntValue       `json:"electonflux"`
	Aurora        IntValue       `json:"aurora"`
	Normalization FloatValue     `json:"normalization"`
	LatDegree     FloatValue     `json:"latdegree"`
	SolarWind     FloatValue     `json:"solarwind"`
	MagneticField FloatValue     `json:"magneticfield"`
	GeomagField   string         `json:"geomagfield"`
	SignalNoise   string         `json:"signalnoise"`
	FoF2          string         `json:"fof2"`
	MUFFactor     string         `json:"muffactor"`
	MUF           string         `json:"muf"`
	Conditions    ConditionTable `json:"calculatedconditions"`
	VHFConditions ConditionTable `json:"calculatedvhfconditions"`
}
