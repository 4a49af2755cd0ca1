package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	gistDescription string
	gistPublic      bool
)

var gistCmd = &cobra.Command{
	Use:   "gist",
	Short: "Create and list gists",
	Long: `Create gists from local files and list your existing gists.

Examples:
  ghops gist create snippet.go
  ghops gist create --public --description "useful bits" a.go b.go
  ghops gist list`,
}

var gistCreateCmd = &cobra.Command{
	Use:   "create <file>...",
	Short: "Create a gist from one or more local files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGistCreate,
}

var gistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your gists",
	RunE:  runGistList,
}

func init() {
	gistCreateCmd.Flags().StringVarP(&gistDescription, "description", "d", "", "Gist description")
	gistCreateCmd.Flags().BoolVarP(&gistPublic, "public", "p", false, "Make the gist public (secret by default)")

	gistCmd.AddCommand(gistCreateCmd)
	gistCmd.AddCommand(gistListCmd)
	rootCmd.AddCommand(gistCmd)
}

func runGistCreate(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	files := make(map[string]string, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files[filepath.Base(path)] = string(content)
	}

	gist, err := client.CreateGist(cmd.Context(), gistDescription, gistPublic, files)
	if err != nil {
		return fmt.Errorf("failed to create gist: %w", err)
	}

	fmt.Println(successStyle.Render("Created gist " + gist.GetID()))
	fmt.Println(gist.GetHTMLURL())

	return nil
}

func runGistList(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	gists, err := client.ListGists(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list gists: %w", err)
	}

	if len(gists) == 0 {
		fmt.Println("No gists found")
		return nil
	}

	for _, gist := range gists {
		visibility := "secret"
		if gist.GetPublic() {
			visibility = "public"
		}
		description := gist.GetDescription()
		if description == "" {
			description = "(no description)"
		}
		fmt.Printf("%s  %s %s\n", gist.GetID(), description, mutedStyle.Render("("+visibility+")"))
	}
	fmt.Printf("\n%d gists\n", len(gists))

	return nil
}
