package adif

import (
	"testing"
	"time"
)

func TestRecordBuilder_Defaults(t *testing.T) {
	qso := NewRecordBuilder().Build()

	if qso.Call != "" || qso.StationCallsign != "" || qso.Band != "" || qso.Mode != "" {
		t.Errorf("expected empty mandatory strings, got %+v", qso)
	}
	if !qso.QsoDate.Equal(time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected default date: %v", qso.QsoDate)
	}
	if !qso.TimeOn.Equal(timeOf(0, 0, 0)) {
		t.Errorf("unexpected default time_on: %v", qso.TimeOn)
	}
	if qso.TimeOff != nil || qso.Freq != nil {
		t.Errorf("expected optional fields unset, got %+v", qso)
	}
}

func TestRecordBuilder_DefaultsEncode(t *testing.T) {
	// Build is total: even an empty builder produces a record that
	// encodes and decodes.
	wire := Encode(NewRecordBuilder().Build())

	qsos, err := Decode(wire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qsos) != 1 {
		t.Fatalf("expected 1 record, got %d", len(qsos))
	}
	if !qsos[0].QsoDate.Equal(time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date after round trip: %v", qsos[0].QsoDate)
	}
}

func TestRecordBuilder_Setters(t *testing.T) {
	qso := NewRecordBuilder().
		Call("W1AW").
		StationCallsign("K1ABC").
		Date(dateOf(2024, time.January, 15)).
		TimeOn(timeOf(14, 30, 0)).
		Band("20m").
		Mode("SSB").
		Freq(14.205).
		AdditionalField("contest_id", "ARRL-DX").
		Build()

	if qso.Call != "W1AW" || qso.StationCallsign != "K1ABC" {
		t.Errorf("unexpected callsigns: %+v", qso)
	}
	if qso.Freq == nil || *qso.Freq != 14.205 {
		t.Errorf("unexpected freq: %+v", qso.Freq)
	}
	if qso.AdditionalFields["contest_id"] != "ARRL-DX" {
		t.Errorf("unexpected additional fields: %v", qso.AdditionalFields)
	}
}
