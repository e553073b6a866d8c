package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Station-Manager/logging"
	"github.com/Station-Manager/types"
	"github.com/spf13/cobra"

	"github.com/Station-Manager/logbook/qrz"
)

var (
	flagKey     string
	flagAgent   string
	flagURL     string
	flagTimeout int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "logbook",
	Short: "QRZ.com logbook client",
	Long: `logbook talks to the QRZ.com logbook API: insert, fetch and delete
QSO records and query logbook status. Records travel as ADIF on the wire
and are printed as JSON.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagKey, "key", "k", "", "logbook access key")
	rootCmd.PersistentFlags().StringVarP(&flagAgent, "agent", "a", "stationmanager-logbook/1.0", "user agent sent with API requests")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "https://logbook.qrz.com/api", "logbook API endpoint")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 30, "HTTP timeout in seconds")
}

// newService builds and initializes a logbook service from the global
// flags.
func newService() (*qrz.Service, error) {
	service := qrz.NewService(&logging.Service{}, nil, &types.LookupConfig{
		Name:           qrz.ServiceName,
		Enabled:        true,
		URL:            flagURL,
		UserAgent:      flagAgent,
		Password:       flagKey,
		HttpTimeoutSec: time.Duration(flagTimeout),
	})
	if err := service.Initialize(); err != nil {
		return nil, err
	}
	return service, nil
}

// fail prints the error and exits, distinguishing transport failures a
// caller might want to retry from everything else.
func fail(err error) {
	if qrz.IsNetworkError(err) {
		fmt.Fprintf(os.Stderr, "network error: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
