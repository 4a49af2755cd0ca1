package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show API rate limit status",
	Long:  `Display the remaining API quota of the authenticated user.`,
	RunE:  runLimits,
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}

func runLimits(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	limits, err := client.GetRateLimit(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch rate limits: %w", err)
	}

	core := limits.GetCore()
	if core == nil {
		fmt.Println("No rate limit information available")
		return nil
	}

	fmt.Printf("core:   %d/%d remaining, resets %s\n",
		core.Remaining, core.Limit, core.Reset.Format(time.Kitchen))

	if search := limits.GetSearch(); search != nil {
		fmt.Printf("search: %d/%d remaining, resets %s\n",
			search.Remaining, search.Limit, search.Reset.Format(time.Kitchen))
	}

	return nil
}
