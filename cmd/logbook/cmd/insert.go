package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Station-Manager/logbook/adif"
)

var (
	insertCall    string
	insertStation string
	insertDate    string
	insertTimeOn  string
	insertTimeOff string
	insertBand    string
	insertMode    string
	insertFreq    float64
	insertRstSent string
	insertRstRcvd string
	insertQth     string
	insertName    string
	insertComment string
	insertReplace bool
)

// insertCmd represents the insert command
var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a QSO record into the logbook",
	Long: `Insert a QSO record into the logbook.

Example:
  logbook insert -k KEY --call W1AW --station K1ABC --date 20240115 \
    --time-on 1430 --band 20m --mode SSB --freq 14.205`,
	Run: func(cmd *cobra.Command, args []string) {
		date, err := adif.ParseDate(insertDate)
		if err != nil {
			fail(err)
		}
		timeOn, err := adif.ParseTime(insertTimeOn)
		if err != nil {
			fail(err)
		}

		builder := adif.NewRecordBuilder().
			Call(insertCall).
			StationCallsign(insertStation).
			Date(date).
			TimeOn(timeOn).
			Band(insertBand).
			Mode(insertMode)

		if insertTimeOff != "" {
			timeOff, err := adif.ParseTime(insertTimeOff)
			if err != nil {
				fail(err)
			}
			builder.TimeOff(timeOff)
		}
		if insertFreq > 0 {
			builder.Freq(insertFreq)
		}
		if insertRstSent != "" {
			builder.RstSent(insertRstSent)
		}
		if insertRstRcvd != "" {
			builder.RstRcvd(insertRstRcvd)
		}
		if insertQth != "" {
			builder.Qth(insertQth)
		}
		if insertName != "" {
			builder.Name(insertName)
		}
		if insertComment != "" {
			builder.Comment(insertComment)
		}

		service, err := newService()
		if err != nil {
			fail(err)
		}

		response, err := service.InsertQso(builder.Build(), insertReplace)
		if err != nil {
			fail(err)
		}

		fmt.Printf("inserted logid %d (count %d)\n", response.Logid, response.Count)
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)

	insertCmd.Flags().StringVar(&insertCall, "call", "", "contacted station's callsign")
	insertCmd.Flags().StringVar(&insertStation, "station", "", "logging station's callsign")
	insertCmd.Flags().StringVar(&insertDate, "date", "", "QSO date (YYYYMMDD)")
	insertCmd.Flags().StringVar(&insertTimeOn, "time-on", "", "start time (HHMM or HHMMSS)")
	insertCmd.Flags().StringVar(&insertTimeOff, "time-off", "", "end time (HHMM or HHMMSS)")
	insertCmd.Flags().StringVar(&insertBand, "band", "", "band, e.g. 20m")
	insertCmd.Flags().StringVar(&insertMode, "mode", "", "mode, e.g. SSB")
	insertCmd.Flags().Float64Var(&insertFreq, "freq", 0, "frequency in MHz")
	insertCmd.Flags().StringVar(&insertRstSent, "rst-sent", "", "signal report sent")
	insertCmd.Flags().StringVar(&insertRstRcvd, "rst-rcvd", "", "signal report received")
	insertCmd.Flags().StringVar(&insertQth, "qth", "", "contacted station's location")
	insertCmd.Flags().StringVar(&insertName, "name", "", "contacted operator's name")
	insertCmd.Flags().StringVar(&insertComment, "comment", "", "free-text comment")
	insertCmd.Flags().BoolVar(&insertReplace, "replace", false, "replace an existing duplicate QSO")

	_ = insertCmd.MarkFlagRequired("call")
	_ = insertCmd.MarkFlagRequired("station")
	_ = insertCmd.MarkFlagRequired("date")
	_ = insertCmd.MarkFlagRequired("time-on")
	_ = insertCmd.MarkFlagRequired("band")
	_ = insertCmd.MarkFlagRequired("mode")
}
