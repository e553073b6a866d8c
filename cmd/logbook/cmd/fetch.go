package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Station-Manager/logbook"
	"github.com/Station-Manager/logbook/adif"
	"github.com/Station-Manager/logbook/qrz"
)

var (
	fetchAll      bool
	fetchBand     string
	fetchMode     string
	fetchCall     string
	fetchMax      int
	fetchAfter    uint64
	fetchDateFrom string
	fetchDateTo   string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch QSO records from the logbook",
	Long: `Fetch QSO records from the logbook, optionally filtered, and print
them as JSON.

Example:
  logbook fetch -k KEY --band 20m --max 100
  logbook fetch -k KEY --all`,
	Run: func(cmd *cobra.Command, args []string) {
		options := qrz.FetchOptions{
			All:        fetchAll,
			Band:       fetchBand,
			Mode:       fetchMode,
			Call:       fetchCall,
			Max:        fetchMax,
			AfterLogid: fetchAfter,
		}

		if fetchDateFrom != "" {
			from, err := adif.ParseDate(fetchDateFrom)
			if err != nil {
				fail(err)
			}
			options.DateFrom = from
		}
		if fetchDateTo != "" {
			to, err := adif.ParseDate(fetchDateTo)
			if err != nil {
				fail(err)
			}
			options.DateTo = to
		}

		service, err := newService()
		if err != nil {
			fail(err)
		}

		var qsos []adif.QsoRecord
		if fetchAll {
			if qsos, err = service.FetchAllQsos(options); err != nil {
				fail(err)
			}
		} else {
			response, err := service.FetchQsos(options)
			if err != nil {
				fail(err)
			}
			qsos = response.Qsos
		}

		data, err := logbook.ExportJSON(qsos)
		if err != nil {
			fail(err)
		}

		fmt.Printf("%s\n", data)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every matching record with paging")
	fetchCmd.Flags().StringVar(&fetchBand, "band", "", "filter by band")
	fetchCmd.Flags().StringVar(&fetchMode, "mode", "", "filter by mode")
	fetchCmd.Flags().StringVar(&fetchCall, "call", "", "filter by callsign")
	fetchCmd.Flags().IntVar(&fetchMax, "max", 0, "maximum number of records")
	fetchCmd.Flags().Uint64Var(&fetchAfter, "after-logid", 0, "start after this logid")
	fetchCmd.Flags().StringVar(&fetchDateFrom, "date-from", "", "start of date range (YYYYMMDD)")
	fetchCmd.Flags().StringVar(&fetchDateTo, "date-to", "", "end of date range (YYYYMMDD)")
}
