package adif

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Station-Manager/errors"
)

// writeField emits one <name:length>value token. The declared length is
// the rune count of the value, never a byte count, so multi-byte values
// round-trip with the lengths the tokenizer expects.
func writeField(sb *strings.Builder, name, value string) {
	fmt.Fprintf(sb, "<%s:%d>%s", name, utf8.RuneCountInString(value), value)
}

func formatTime(t time.Time) string {
	return t.Format("1504")
}

func formatFreq(freq float64) string {
	return strconv.FormatFloat(freq, 'g', -1, 64)
}

// splitRecords partitions input on end-of-record markers, matched
// case-insensitively. The trailing segment after the final marker is
// included; Decode drops it when it is blank.
func splitRecords(input string) []string {
	var parts []string

	start := 0
	for i := 0; i+len(eorMarker) <= len(input); i++ {
		if input[i] == '<' && strings.EqualFold(input[i:i+len(eorMarker)], eorMarker) {
			parts = append(parts, input[start:i])
			start = i + len(eorMarker)
			i = start - 1
		}
	}

	return append(parts, input[start:])
}

func decodeRecord(record string) (QsoRecord, error) {
	fields, err := tokenizeFields(record)
	if err != nil {
		return QsoRecord{}, err
	}
	return assembleRecord(fields)
}

// tokenizeFields scans one record for <name:length>value tokens and
// returns a field name to value mapping with names lowercased. Value
// extraction is driven solely by the declared length; values may contain
// any character, including '<'. A later duplicate tag overwrites an
// earlier one. Tags without a length prefix are consumed and ignored, and
// characters outside a tag are skipped.
func tokenizeFields(record string) (map[string]string, error) {
	const op errors.Op = "adif.tokenizeFields"

	fields := make(map[string]string)
	chars := []rune(record)

	pos := 0
	for pos < len(chars) {
		if chars[pos] != '<' {
			pos++
			continue
		}

		nameStart := pos + 1
		nameEnd := nameStart
		for nameEnd < len(chars) && chars[nameEnd] != ':' && chars[nameEnd] != '>' {
			nameEnd++
		}
		if nameEnd >= len(chars) {
			break
		}

		name := strings.ToLower(string(chars[nameStart:nameEnd]))

		if chars[nameEnd] == '>' {
			// Length-less marker tag, nothing to capture.
			pos = nameEnd + 1
			continue
		}

		lengthStart := nameEnd + 1
		lengthEnd := lengthStart
		for lengthEnd < len(chars) && chars[lengthEnd] != '>' {
			lengthEnd++
		}
		if lengthEnd >= len(chars) {
			break
		}

		lengthStr := string(chars[lengthStart:lengthEnd])
		length, err := strconv.Atoi(lengthStr)
		if err != nil || length < 0 {
			return nil, parseError(op, "invalid length: %s", lengthStr)
		}

		valueStart := lengthEnd + 1
		valueEnd := valueStart + length
		if valueEnd > len(chars) {
			return nil, parseError(op, "field value extends beyond record")
		}

		fields[name] = string(chars[valueStart:valueEnd])
		pos = valueEnd
	}

	return fields, nil
}

// assembleRecord maps tokenized fields onto a QsoRecord, enforcing the
// mandatory fields and converting typed values. Fields without a
// dedicated attribute stay behind in AdditionalFields.
func assembleRecord(fields map[string]string) (QsoRecord, error) {
	const op errors.Op = "adif.assembleRecord"

	additional := make(map[string]string, len(fields))
	for key, value := range fields {
		additional[key] = value
	}

	take := func(name string) (string, bool) {
		value, ok := additional[name]
		if ok {
			delete(additional, name)
		}
		return value, ok
	}

	var (
		qso QsoRecord
		ok  bool
		err error
	)

	if qso.Call, ok = take("call"); !ok {
		return QsoRecord{}, parseError(op, "missing call field")
	}
	if qso.StationCallsign, ok = take("station_callsign"); !ok {
		return QsoRecord{}, parseError(op, "missing station_callsign field")
	}
	if qso.Band, ok = take("band"); !ok {
		return QsoRecord{}, parseError(op, "missing band field")
	}
	if qso.Mode, ok = take("mode"); !ok {
		return QsoRecord{}, parseError(op, "missing mode field")
	}

	dateStr, ok := take("qso_date")
	if !ok {
		return QsoRecord{}, parseError(op, "missing qso_date field")
	}
	if qso.QsoDate, err = ParseDate(dateStr); err != nil {
		return QsoRecord{}, err
	}

	timeStr, ok := take("time_on")
	if !ok {
		return QsoRecord{}, parseError(op, "missing time_on field")
	}
	if qso.TimeOn, err = ParseTime(timeStr); err != nil {
		return QsoRecord{}, err
	}

	if value, found := take("time_off"); found {
		timeOff, timeErr := ParseTime(value)
		if timeErr != nil {
			return QsoRecord{}, timeErr
		}
		qso.TimeOff = &timeOff
	}

	if value, found := take("freq"); found {
		freq, freqErr := strconv.ParseFloat(value, 64)
		if freqErr != nil {
			return QsoRecord{}, parseError(op, "invalid frequency format")
		}
		qso.Freq = &freq
	}

	qso.RstSent, _ = take("rst_sent")
	qso.RstRcvd, _ = take("rst_rcvd")
	qso.Qth, _ = take("qth")
	qso.Name, _ = take("name")
	qso.Comment, _ = take("comment")

	qso.AdditionalFields = additional
	return qso, nil
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
