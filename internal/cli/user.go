package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the authenticated user",
	Long:  `Fetch and display the profile of the authenticated user.`,
	RunE:  runUser,
}

func init() {
	rootCmd.AddCommand(userCmd)
}

func runUser(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	profile, err := client.GetUser(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}

	fmt.Println(titleStyle.Render(profile.GetLogin()))
	if profile.GetName() != "" {
		fmt.Printf("  name:   %s\n", profile.GetName())
	}
	if profile.GetCompany() != "" {
		fmt.Printf("  company: %s\n", profile.GetCompany())
	}
	fmt.Printf("  public repos: %d\n", profile.GetPublicRepos())
	fmt.Printf("  followers:    %d\n", profile.GetFollowers())
	fmt.Printf("  session:      %s\n", apiSession.State())

	return nil
}
