package qrz

import (
	"fmt"
	"strings"
	"time"

	"github.com/Station-Manager/logbook/adif"
)

// InsertResponse is the result of an INSERT action.
type InsertResponse struct {
	Logid uint64 `json:"logid"`
	Count int    `json:"count"`
}

// DeleteResponse is the result of a DELETE action. The API reports
// RESULT=PARTIAL when some logids were not found; those come back in
// NotFoundLogids.
type DeleteResponse struct {
	DeletedCount   int      `json:"deleted_count"`
	NotFoundLogids []uint64 `json:"not_found_logids,omitempty"`
}

// StatusResponse carries the key/value pairs of the STATUS action's DATA
// envelope.
type StatusResponse struct {
	Data map[string]string `json:"data"`
}

// FetchResponse is the result of a FETCH action.
type FetchResponse struct {
	Count  int              `json:"count"`
	Logids []uint64         `json:"logids,omitempty"`
	Qsos   []adif.QsoRecord `json:"qsos,omitempty"`
}

// FetchOptions filters a FETCH action. Zero values mean "no filter";
// DateFrom/DateTo use only the calendar date.
type FetchOptions struct {
	All        bool
	Band       string
	Mode       string
	Call       string
	Max        int
	AfterLogid uint64
	DateFrom   time.Time
	DateTo     time.Time
}

// optionValue renders the options as the comma-separated OPTION string
// the API expects. An empty string means the OPTION parameter is omitted.
func (o FetchOptions) optionValue() string {
	var options []string

	if o.All {
		options = append(options, "ALL")
	}
	if o.Band != "" {
		options = append(options, "BAND:"+o.Band)
	}
	if o.Mode != "" {
		options = append(options, "MODE:"+o.Mode)
	}
	if o.Call != "" {
		options = append(options, "CALL:"+o.Call)
	}
	if o.Max > 0 {
		options = append(options, fmt.Sprintf("MAX:%d", o.Max))
	}
	if o.AfterLogid > 0 {
		options = append(options, fmt.Sprintf("AFTERLOGID:%d", o.AfterLogid))
	}
	if !o.DateFrom.IsZero() {
		options = append(options, "DATEFROM:"+o.DateFrom.Format("20060102"))
	}
	if !o.DateTo.IsZero() {
		options = append(options, "DATETO:"+o.DateTo.Format("20060102"))
	}

	return strings.Join(options, ",")
}
