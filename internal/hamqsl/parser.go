package hamqsl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedFeed reports a payload that is not the expected solar
// document at all. Missing leaf fields are never an error.
var ErrMalformedFeed = errors.New("malformed solar feed")

// feedDocument mirrors the hamqsl.com XML envelope. Every leaf is a plain
// string: the feed omits fields freely and types are enforced only at the
// safe-extract step.
type feedDocument struct {
	XMLName xml.Name   `xml:"solar"`
	Data    *solarData `xml:"solardata"`
}

type solarData struct {
	Source        string           `xml:"source"`
	Updated       string           `xml:"updated"`
	SolarFlux     string           `xml:"solarflux"`
	AIndex        string           `xml:"aindex"`
	KIndex        string           `xml:"kindex"`
	KIndexNT      string           `xml:"kindexnt"`
	XRay          string           `xml:"xray"`
	Sunspots      string           `xml:"sunspots"`
	HeliumLine    string           `xml:"heliumline"`
	ProtonFlux    string           `xml:"protonflux"`
	ElectonFlux   string           `xml:"electonflux"`
	Aurora        string           `xml:"aurora"`
	Normalization string           `xml:"normalization"`
	LatDegree     string           `xml:"latdegree"`
	SolarWind     string           `xml:"solarwind"`
	MagneticField string           `xml:"magneticfield"`
	GeomagField   string           `xml:"geomagfield"`
	SignalNoise   string           `xml:"signalnoise"`
	FoF2          string           `xml:"fof2"`
	MUFFactor     string           `xml:"muffactor"`
	MUF           string           `xml:"muf"`
	Bands         []bandEntry      `xml:"calculatedconditions>band"`
	Phenomena     []phenomenonItem `xml:"calculatedvhfconditions>phenomenon"`
}

type bandEntry struct {
	Name  string `xml:"name,attr"`
	Time  string `xml:"time,attr"`
	Value string `xml:",chardata"`
}

type phenomenonItem struct {
	Name     string `xml:"name,attr"`
	Location string `xml:"location,attr"`
	Value    string `xml:",chardata"`
}

// Parse converts a raw feed payload into the canonical record. It fails
// only when the payload is not a solar document; absent or malformed leaf
// values resolve to the NA sentinel.
func Parse(payload []byte) (SolarRecord, error) {
	var doc feedDocument
	if err := xml.Unmarshal(payload, &doc); err != nil {
		return SolarRecord{}, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	if doc.Data == nil {
		return SolarRecord{}, fmt.Errorf("%w: missing solardata envelope", ErrMalformedFeed)
	}

	d := doc.Data
	rec := SolarRecord{
		Source:        safeString(d.Source),
		Updated:       safeString(d.Updated),
		SolarFlux:     safeInt(d.SolarFlux),
		AIndex:        safeInt(d.AIndex),
		KIndex:        safeInt(d.KIndex),
		KIndexNT:      safeString(d.KIndexNT),
		XRay:          safeString(d.XRay),
		Sunspots:      safeInt(d.Sunspots),
		HeliumLine:    safeFloat(d.HeliumLine),
		ProtonFlux:    safeInt(d.ProtonFlux),
		ElectonFlux:   safeInt(d.ElectonFlux),
		Aurora:        safeInt(d.Aurora),
		Normalization: safeFloat(d.Normalization),
		LatDegree:     safeFloat(d.LatDegree),
		SolarWind:     safeFloat(d.SolarWind),
		MagneticField: safeFloat(d.MagneticField),
		GeomagField:   safeString(d.GeomagField),
		SignalNoise:   safeString(d.SignalNoise),
		FoF2:          safeString(d.FoF2),
		MUFFactor:     safeString(d.MUFFactor),
		MUF:           safeString(d.MUF),
	}

	for _, b := range d.Bands {
		rec.Conditions.Set(strings.TrimSpace(b.Name), strings.TrimSpace(b.Time), strings.TrimSpace(b.Value))
	}
	for _, p := range d.Phenomena {
		rec.VHFConditions.Set(strings.TrimSpace(p.Name), strings.TrimSpace(p.Location), strings.TrimSpace(p.Value))
	}

	return rec, nil
}

// safeString trims the raw text and substitutes NA for empty input.
func safeString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NA
	}
	return s
}

func safeInt(s string) IntValue {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return IntValue{}
	}
	return IntValue{V: v, Present: true}
}

func safeFloat(s string) FloatValue {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return FloatValue{}
	}
	return FloatValue{V: v, Present: true}
}
