package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show logbook status",
	Long: `Show the logbook's status data (book name, owner, contact counts).

Example:
  logbook status -k KEY`,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fail(err)
		}

		response, err := service.Status()
		if err != nil {
			fail(err)
		}

		keys := make([]string, 0, len(response.Data))
		for key := range response.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Printf("%s=%s\n", key, response.Data[key])
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
