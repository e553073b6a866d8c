package adif

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func dateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func timeOf(hour, minute, second int) time.Time {
	return time.Date(0, time.January, 1, hour, minute, second, 0, time.UTC)
}

const baseRecord = "<call:4>W1AW<station_callsign:5>K1ABC<qso_date:8>20240115<time_on:4>1430<band:3>20m<mode:3>SSB"

func TestDecode_SingleRecord(t *testing.T) {
	qsos, err := Decode(baseRecord + "<eor>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qsos) != 1 {
		t.Fatalf("expected 1 record, got %d", len(qsos))
	}

	qso := qsos[0]
	if qso.Call != "W1AW" {
		t.Errorf("unexpected call: %q", qso.Call)
	}
	if qso.StationCallsign != "K1ABC" {
		t.Errorf("unexpected station_callsign: %q", qso.StationCallsign)
	}
	if !qso.QsoDate.Equal(dateOf(2024, time.January, 15)) {
		t.Errorf("unexpected qso_date: %v", qso.QsoDate)
	}
	if !qso.TimeOn.Equal(timeOf(14, 30, 0)) {
		t.Errorf("unexpected time_on: %v", qso.TimeOn)
	}
	if qso.Band != "20m" || qso.Mode != "SSB" {
		t.Errorf("unexpected band/mode: %q/%q", qso.Band, qso.Mode)
	}
	if qso.TimeOff != nil || qso.Freq != nil {
		t.Errorf("expected time_off and freq to be absent")
	}
	if qso.RstSent != "" || qso.RstRcvd != "" || qso.Qth != "" || qso.Name != "" || qso.Comment != "" {
		t.Errorf("expected optional string fields to be empty")
	}
	if len(qso.AdditionalFields) != 0 {
		t.Errorf("expected no additional fields, got %v", qso.AdditionalFields)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "non-numeric length",
			payload: "<call:x>W1AW<eor>",
			wantErr: "invalid length: x",
		},
		{
			name:    "value extends beyond record",
			payload: "<call:10>W1AW<eor>",
			wantErr: "field value extends beyond record",
		},
		{
			name:    "month out of range",
			payload: strings.Replace(baseRecord, "20240115", "20241301", 1) + "<eor>",
			wantErr: "invalid date",
		},
		{
			name:    "day invalid for month",
			payload: strings.Replace(baseRecord, "20240115", "20240230", 1) + "<eor>",
			wantErr: "invalid date",
		},
		{
			name:    "date wrong digit count",
			payload: strings.Replace(baseRecord, "<qso_date:8>20240115", "<qso_date:6>202401", 1) + "<eor>",
			wantErr: "date must be 8 characters (YYYYMMDD)",
		},
		{
			name:    "non-numeric month",
			payload: strings.Replace(baseRecord, "20240115", "2024ab15", 1) + "<eor>",
			wantErr: "invalid month in date",
		},
		{
			name:    "time out of range",
			payload: strings.Replace(baseRecord, "<time_on:4>1430", "<time_on:4>2561", 1) + "<eor>",
			wantErr: "invalid time",
		},
		{
			name:    "time wrong digit count",
			payload: strings.Replace(baseRecord, "<time_on:4>1430", "<time_on:5>14300", 1) + "<eor>",
			wantErr: "time must be 4 or 6 characters (HHMM or HHMMSS)",
		},
		{
			name:    "invalid time_off",
			payload: baseRecord + "<time_off:4>9999<eor>",
			wantErr: "invalid time",
		},
		{
			name:    "invalid frequency",
			payload: baseRecord + "<freq:3>abc<eor>",
			wantErr: "invalid frequency format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !stderrors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestDecode_MissingMandatoryFields(t *testing.T) {
	tokens := map[string]string{
		"call":             "<call:4>W1AW",
		"station_callsign": "<station_callsign:5>K1ABC",
		"qso_date":         "<qso_date:8>20240115",
		"time_on":          "<time_on:4>1430",
		"band":             "<band:3>20m",
		"mode":             "<mode:3>SSB",
	}
	order := []string{"call", "station_callsign", "qso_date", "time_on", "band", "mode"}

	for _, missing := range order {
		t.Run(missing, func(t *testing.T) {
			var sb strings.Builder
			for _, name := range order {
				if name != missing {
					sb.WriteString(tokens[name])
				}
			}
			sb.WriteString("<eor>")

			_, err := Decode(sb.String())
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			want := "missing " + missing + " field"
			if err.Error() != want {
				t.Fatalf("expected error %q, got %q", want, err.Error())
			}
		})
	}
}

func TestDecode_TimeTolerance(t *testing.T) {
	short, err := Decode(baseRecord + "<eor>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	long, err := Decode(strings.Replace(baseRecord, "<time_on:4>1430", "<time_on:6>143000", 1) + "<eor>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !short[0].TimeOn.Equal(long[0].TimeOn) {
		t.Fatalf("expected HHMM and HHMMSS to decode equally: %v vs %v", short[0].TimeOn, long[0].TimeOn)
	}
	if !long[0].TimeOn.Equal(timeOf(14, 30, 0)) {
		t.Fatalf("unexpected time: %v", long[0].TimeOn)
	}
}

func TestDecode_Multiplicity(t *testing.T) {
	records := []string{
		"<call:4>W1AW<station_callsign:5>K1ABC<qso_date:8>20240115<time_on:4>1430<band:3>20m<mode:3>SSB",
		"<call:5>K9XYZ<station_callsign:5>K1ABC<qso_date:8>20240116<time_on:6>091500<band:3>40m<mode:2>CW",
		"<call:5>G0ABC<station_callsign:5>K1ABC<qso_date:8>20240117<time_on:4>2300<band:3>80m<mode:3>FT8",
	}
	input := records[0] + "<eor>\n" + records[1] + "<eor>\n\n  " + records[2] + "<eor>\n"

	qsos, err := Decode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qsos) != 3 {
		t.Fatalf("expected 3 records, got %d", len(qsos))
	}

	wantCalls := []string{"W1AW", "K9XYZ", "G0ABC"}
	for i, want := range wantCalls {
		if qsos[i].Call != want {
			t.Errorf("record %d: expected call %q, got %q", i, want, qsos[i].Call)
		}
	}
}

func TestDecode_TagCaseAndDuplicates(t *testing.T) {
	input := "<CALL:4>W1AW<Station_Callsign:5>K1ABC<QSO_DATE:8>20240115" +
		"<TIME_ON:4>1430<BAND:3>20m<MODE:3>SSB<call:5>K9XYZ<EOR>"

	qsos, err := Decode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qsos) != 1 {
		t.Fatalf("expected 1 record, got %d", len(qsos))
	}
	// The later duplicate call tag wins.
	if qsos[0].Call != "K9XYZ" {
		t.Fatalf("expected duplicate tag to overwrite, got call %q", qsos[0].Call)
	}
}

func TestDecode_ValueWithDelimiters(t *testing.T) {
	qsos, err := Decode(baseRecord + "<comment:11>5<9 B&W rig<eor>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qsos[0].Comment != "5<9 B&W rig" {
		t.Fatalf("unexpected comment: %q", qsos[0].Comment)
	}
}

func TestDecode_MarkerTagsAndStrayText(t *testing.T) {
	input := "generated for test\n<app>" + baseRecord + " <eor>"

	qsos, err := Decode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qsos) != 1 {
		t.Fatalf("expected 1 record, got %d", len(qsos))
	}
	if qsos[0].Call != "W1AW" {
		t.Fatalf("unexpected call: %q", qsos[0].Call)
	}
}

func TestDecode_AdditionalFields(t *testing.T) {
	qsos, err := Decode(baseRecord + "<GRIDSQUARE:6>FN31pr<my_rig:6>IC-705<eor>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	additional := qsos[0].AdditionalFields
	if len(additional) != 2 {
		t.Fatalf("expected 2 additional fields, got %v", additional)
	}
	if additional["gridsquare"] != "FN31pr" {
		t.Errorf("expected lowercased gridsquare key, got %v", additional)
	}
	if additional["my_rig"] != "IC-705" {
		t.Errorf("unexpected my_rig value: %v", additional)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \n\t "} {
		qsos, err := Decode(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(qsos) != 0 {
			t.Fatalf("expected no records, got %d", len(qsos))
		}
	}
}

func TestEncode_FieldOrder(t *testing.T) {
	qso := NewRecordBuilder().
		Call("W1AW").
		StationCallsign("K1ABC").
		Date(dateOf(2024, time.January, 15)).
		TimeOn(timeOf(14, 30, 0)).
		TimeOff(timeOf(15, 45, 0)).
		Band("20m").
		Mode("SSB").
		Freq(14.205).
		RstSent("59").
		RstRcvd("57").
		Qth("Newington").
		Name("Fred").
		Comment("Test QSO").
		Build()

	want := "<call:4>W1AW<station_callsign:5>K1ABC<qso_date:8>20240115" +
		"<time_on:4>1430<band:3>20m<mode:3>SSB<time_off:4>1545<freq:6>14.205" +
		"<rst_sent:2>59<rst_rcvd:2>57<qth:9>Newington<name:4>Fred<comment:8>Test QSO<eor>"

	if got := Encode(qso); got != want {
		t.Fatalf("unexpected encoding:\n got %q\nwant %q", got, want)
	}
}

func TestEncode_AdditionalFields(t *testing.T) {
	qso := NewRecordBuilder().
		Call("W1AW").
		StationCallsign("K1ABC").
		Date(dateOf(2024, time.January, 15)).
		TimeOn(timeOf(14, 30, 0)).
		Band("20m").
		Mode("SSB").
		AdditionalField("GRIDSQUARE", "FN31pr").
		Build()

	got := Encode(qso)
	// Tag names are lowercased on output; additional field order is not
	// contractual, so only membership is checked.
	if !strings.Contains(got, "<gridsquare:6>FN31pr") {
		t.Fatalf("expected lowercased additional field in %q", got)
	}
	if !strings.HasSuffix(got, "<eor>") {
		t.Fatalf("expected end-of-record marker in %q", got)
	}
}

func TestEncode_RuneLengths(t *testing.T) {
	qso := NewRecordBuilder().
		Call("W1AW").
		StationCallsign("K1ABC").
		Date(dateOf(2024, time.January, 15)).
		TimeOn(timeOf(14, 30, 0)).
		Band("20m").
		Mode("SSB").
		Name("José").
		Build()

	got := Encode(qso)
	if !strings.Contains(got, "<name:4>José") {
		t.Fatalf("expected rune-counted length prefix in %q", got)
	}

	qsos, err := Decode(got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qsos[0].Name != "José" {
		t.Fatalf("unexpected name after round trip: %q", qsos[0].Name)
	}
}

func TestRoundTrip(t *testing.T) {
	original := NewRecordBuilder().
		Call("W1AW").
		StationCallsign("K1ABC").
		Date(dateOf(2024, time.January, 15)).
		TimeOn(timeOf(14, 30, 0)).
		TimeOff(timeOf(15, 45, 0)).
		Band("20m").
		Mode("SSB").
		Freq(14.205).
		RstSent("59").
		RstRcvd("57").
		Qth("Newington").
		Name("Fred").
		Comment("Test QSO").
		AdditionalField("gridsquare", "FN31pr").
		AdditionalField("my_rig", "IC-705").
		Build()

	qsos, err := Decode(Encode(original))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qsos) != 1 {
		t.Fatalf("expected 1 record, got %d", len(qsos))
	}

	got := qsos[0]
	if got.Call != original.Call || got.StationCallsign != original.StationCallsign {
		t.Errorf("callsigns did not round-trip: %+v", got)
	}
	if !got.QsoDate.Equal(original.QsoDate) || !got.TimeOn.Equal(original.TimeOn) {
		t.Errorf("date/time did not round-trip: %+v", got)
	}
	if got.TimeOff == nil || !got.TimeOff.Equal(*original.TimeOff) {
		t.Errorf("time_off did not round-trip: %+v", got.TimeOff)
	}
	if got.Band != original.Band || got.Mode != original.Mode {
		t.Errorf("band/mode did not round-trip: %+v", got)
	}
	if got.Freq == nil || *got.Freq != *original.Freq {
		t.Errorf("freq did not round-trip: %+v", got.Freq)
	}
	if got.RstSent != original.RstSent || got.RstRcvd != original.RstRcvd {
		t.Errorf("signal reports did not round-trip: %+v", got)
	}
	if got.Qth != original.Qth || got.Name != original.Name || got.Comment != original.Comment {
		t.Errorf("optional strings did not round-trip: %+v", got)
	}
	if len(got.AdditionalFields) != len(original.AdditionalFields) {
		t.Fatalf("additional fields did not round-trip: %v", got.AdditionalFields)
	}
	for key, want := range original.AdditionalFields {
		if got.AdditionalFields[key] != want {
			t.Errorf("additional field %q: expected %q, got %q", key, want, got.AdditionalFields[key])
		}
	}
}

func TestDecode_LengthDrivenExtraction(t *testing.T) {
	// A declared length one short of the value makes the final character
	// stray text, which the tokenizer skips; the record still decodes but
	// the value is truncated to the declared length.
	qsos, err := Decode(strings.Replace(baseRecord, "<call:4>W1AW", "<call:3>W1AW", 1) + "<eor>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qsos[0].Call != "W1A" {
		t.Fatalf("expected length-driven extraction, got %q", qsos[0].Call)
	}

	// A declared length past the end of the record is an error, never an
	// over-read.
	_, err = Decode("<call:4>W1AW<station_callsign:99>K1ABC<eor>")
	if err == nil || err.Error() != "field value extends beyond record" {
		t.Fatalf("expected over-length error, got %v", err)
	}
}
