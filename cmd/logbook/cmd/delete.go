package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <logid>...",
	Short: "Delete QSO records from the logbook",
	Long: `Delete one or more QSO records from the logbook by logid.

Example:
  logbook delete -k KEY 12345 12346`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logids := make([]uint64, 0, len(args))
		for _, arg := range args {
			logid, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				fail(fmt.Errorf("invalid logid %q", arg))
			}
			logids = append(logids, logid)
		}

		service, err := newService()
		if err != nil {
			fail(err)
		}

		response, err := service.DeleteQsos(logids)
		if err != nil {
			fail(err)
		}

		fmt.Printf("deleted %d QSOs\n", response.DeletedCount)
		if len(response.NotFoundLogids) > 0 {
			fmt.Printf("not found: %v\n", response.NotFoundLogids)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
