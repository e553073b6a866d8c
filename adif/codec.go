// Package adif encodes and decodes QSO records in the ADIF
// (Amateur Data Interchange Format) wire format used by the QRZ.com
// logbook API: a flat sequence of <name:length>value tokens terminated by
// an <eor> marker. The codec is pure computation over in-memory text and
// is safe for concurrent use.
package adif

import (
	"strconv"
	"strings"
	"time"

	"github.com/Station-Manager/errors"
)

const eorMarker = "<eor>"

// Encode renders a single QSO record as ADIF text, terminated by the
// end-of-record marker. Mandatory fields are emitted first in a fixed
// order, then populated optional fields, then additional fields. Encoding
// never fails; any record value produces a wire string.
func Encode(qso QsoRecord) string {
	var sb strings.Builder

	writeField(&sb, "call", qso.Call)
	writeField(&sb, "station_callsign", qso.StationCallsign)
	writeField(&sb, "qso_date", qso.QsoDate.Format("20060102"))
	writeField(&sb, "time_on", formatTime(qso.TimeOn))
	writeField(&sb, "band", qso.Band)
	writeField(&sb, "mode", qso.Mode)

	if qso.TimeOff != nil {
		writeField(&sb, "time_off", formatTime(*qso.TimeOff))
	}
	if qso.Freq != nil {
		writeField(&sb, "freq", formatFreq(*qso.Freq))
	}
	if qso.RstSent != "" {
		writeField(&sb, "rst_sent", qso.RstSent)
	}
	if qso.RstRcvd != "" {
		writeField(&sb, "rst_rcvd", qso.RstRcvd)
	}
	if qso.Qth != "" {
		writeField(&sb, "qth", qso.Qth)
	}
	if qso.Name != "" {
		writeField(&sb, "name", qso.Name)
	}
	if qso.Comment != "" {
		writeField(&sb, "comment", qso.Comment)
	}

	for key, value := range qso.AdditionalFields {
		writeField(&sb, strings.ToLower(key), value)
	}

	sb.WriteString(eorMarker)
	return sb.String()
}

// Decode parses ADIF text containing zero or more <eor>-terminated
// records into QSO records in input order. The end-of-record marker is
// matched case-insensitively and whitespace between records is ignored.
// Any malformed record fails the whole call; all returned errors satisfy
// errors.Is(err, ErrParse).
func Decode(input string) ([]QsoRecord, error) {
	var qsos []QsoRecord

	for _, record := range splitRecords(input) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		qso, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		qsos = append(qsos, qso)
	}

	return qsos, nil
}

// ParseDate parses an ADIF date value (YYYYMMDD) into a calendar date.
func ParseDate(value string) (time.Time, error) {
	const op errors.Op = "adif.ParseDate"

	if len(value) != 8 {
		return time.Time{}, parseError(op, "date must be 8 characters (YYYYMMDD)")
	}

	year, err := strconv.Atoi(value[0:4])
	if err != nil {
		return time.Time{}, parseError(op, "invalid year in date")
	}
	month, err := strconv.Atoi(value[4:6])
	if err != nil {
		return time.Time{}, parseError(op, "invalid month in date")
	}
	day, err := strconv.Atoi(value[6:8])
	if err != nil {
		return time.Time{}, parseError(op, "invalid day in date")
	}

	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, parseError(op, "invalid date")
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseTime parses an ADIF time value, either HHMM or HHMMSS. A 4-digit
// value gets its seconds defaulted to zero.
func ParseTime(value string) (time.Time, error) {
	const op errors.Op = "adif.ParseTime"

	if len(value) == 4 {
		value += "00"
	}
	if len(value) != 6 {
		return time.Time{}, parseError(op, "time must be 4 or 6 characters (HHMM or HHMMSS)")
	}

	hour, err := strconv.Atoi(value[0:2])
	if err != nil {
		return time.Time{}, parseError(op, "invalid hour in time")
	}
	minute, err := strconv.Atoi(value[2:4])
	if err != nil {
		return time.Time{}, parseError(op, "invalid minute in time")
	}
	second, err := strconv.Atoi(value[4:6])
	if err != nil {
		return time.Time{}, parseError(op, "invalid second in time")
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, parseError(op, "invalid time")
	}

	return time.Date(0, time.January, 1, hour, minute, second, 0, time.UTC), nil
}
