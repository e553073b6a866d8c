package adif

import (
	"time"
)

// QsoRecord is one logged radio contact. Mandatory attributes are plain
// values; TimeOff and Freq are pointers so an unset value is
// distinguishable from a genuine zero. AdditionalFields carries every ADIF
// tag that has no dedicated attribute, keyed by lowercase field name.
type QsoRecord struct {
	Call             string            `json:"call"`
	StationCallsign  string            `json:"station_callsign"`
	QsoDate          time.Time         `json:"qso_date"`
	TimeOn           time.Time         `json:"time_on"`
	TimeOff          *time.Time        `json:"time_off,omitempty"`
	Band             string            `json:"band"`
	Mode             string            `json:"mode"`
	Freq             *float64          `json:"freq,omitempty"`
	RstSent          string            `json:"rst_sent,omitempty"`
	RstRcvd          string            `json:"rst_rcvd,omitempty"`
	Qth              string            `json:"qth,omitempty"`
	Name             string            `json:"name,omitempty"`
	Comment          string            `json:"comment,omitempty"`
	AdditionalFields map[string]string `json:"additional_fields,omitempty"`
}

// RecordBuilder assembles a QsoRecord with fluent setters. Build is total:
// mandatory fields left unset are filled with defaults (empty strings,
// 1900-01-01, 00:00:00) so the result always encodes.
type RecordBuilder struct {
	record QsoRecord
}

// NewRecordBuilder creates an empty record builder.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

// Call sets the contacted station's callsign.
func (b *RecordBuilder) Call(call string) *RecordBuilder {
	b.record.Call = call
	return b
}

// StationCallsign sets the logging station's callsign.
func (b *RecordBuilder) StationCallsign(callsign string) *RecordBuilder {
	b.record.StationCallsign = callsign
	return b
}

// Date sets the contact date. Only the year, month and day are used.
func (b *RecordBuilder) Date(date time.Time) *RecordBuilder {
	b.record.QsoDate = date
	return b
}

// TimeOn sets the contact start time. Only the time of day is used.
func (b *RecordBuilder) TimeOn(t time.Time) *RecordBuilder {
	b.record.TimeOn = t
	return b
}

// TimeOff sets the contact end time.
func (b *RecordBuilder) TimeOff(t time.Time) *RecordBuilder {
	b.record.TimeOff = &t
	return b
}

// Band sets the band, e.g. "20m".
func (b *RecordBuilder) Band(band string) *RecordBuilder {
	b.record.Band = band
	return b
}

// Mode sets the mode, e.g. "SSB", "CW", "FT8".
func (b *RecordBuilder) Mode(mode string) *RecordBuilder {
	b.record.Mode = mode
	return b
}

// Freq sets the frequency in MHz.
func (b *RecordBuilder) Freq(freq float64) *RecordBuilder {
	b.record.Freq = &freq
	return b
}

// RstSent sets the signal report sent.
func (b *RecordBuilder) RstSent(rst string) *RecordBuilder {
	b.record.RstSent = rst
	return b
}

// RstRcvd sets the signal report received.
func (b *RecordBuilder) RstRcvd(rst string) *RecordBuilder {
	b.record.RstRcvd = rst
	return b
}

// Qth sets the contacted station's location.
func (b *RecordBuilder) Qth(qth string) *RecordBuilder {
	b.record.Qth = qth
	return b
}

// Name sets the contacted operator's name.
func (b *RecordBuilder) Name(name string) *RecordBuilder {
	b.record.Name = name
	return b
}

// Comment sets a free-text comment.
func (b *RecordBuilder) Comment(comment string) *RecordBuilder {
	b.record.Comment = comment
	return b
}

// AdditionalField records an ADIF tag that has no dedicated attribute.
func (b *RecordBuilder) AdditionalField(key, value string) *RecordBuilder {
	if b.record.AdditionalFields == nil {
		b.record.AdditionalFields = make(map[string]string)
	}
	b.record.AdditionalFields[key] = value
	return b
}

// Build materializes the record, substituting defaults for unset mandatory
// fields.
func (b *RecordBuilder) Build() QsoRecord {
	record := b.record
	if record.QsoDate.IsZero() {
		record.QsoDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	if record.TimeOn.IsZero() {
		record.TimeOn = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return record
}
