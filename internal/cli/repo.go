package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/ghops/internal/github"
	"github.com/quillhq/ghops/pkg/util"
)

var (
	repoVisibility  string
	repoAffiliation string
	repoDescription string
	repoPrivate     bool
	repoAutoInit    bool
	repoForce       bool
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage repositories",
	Long: `List, create and delete repositories of the authenticated user.

Examples:
  ghops repo list
  ghops repo list --visibility private
  ghops repo create my-project --private --init
  ghops repo delete owner/old-project --force`,
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your repositories",
	RunE:  runRepoList,
}

var repoCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoCreate,
}

var repoDeleteCmd = &cobra.Command{
	Use:   "delete <owner/repo>",
	Short: "Permanently delete a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepoDelete,
}

func init() {
	repoListCmd.Flags().StringVar(&repoVisibility, "visibility", "all", "Filter by visibility (all, public, private)")
	repoListCmd.Flags().StringVar(&repoAffiliation, "affiliation", "owner", "Filter by affiliation (owner, collaborator, organization_member)")

	repoCreateCmd.Flags().StringVarP(&repoDescription, "description", "d", "", "Repository description")
	repoCreateCmd.Flags().BoolVarP(&repoPrivate, "private", "p", false, "Create a private repository")
	repoCreateCmd.Flags().BoolVar(&repoAutoInit, "init", false, "Initialize with an empty README")

	repoDeleteCmd.Flags().BoolVarP(&repoForce, "force", "f", false, "Skip the confirmation prompt")

	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoCreateCmd)
	repoCmd.AddCommand(repoDeleteCmd)
	rootCmd.AddCommand(repoCmd)
}

func runRepoList(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	opts := github.DefaultListOptions()
	opts.Visibility = repoVisibility
	opts.Affiliation = repoAffiliation

	repos, err := client.ListRepos(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}

	if len(repos) == 0 {
		fmt.Println("No repositories found")
		return nil
	}

	for _, repo := range repos {
		visibility := "public"
		if repo.GetPrivate() {
			visibility = "private"
		}
		fmt.Printf("%s %s\n", repo.GetFullName(), mutedStyle.Render("("+visibility+")"))
	}
	fmt.Printf("\n%d repositories\n", len(repos))

	return nil
}

func runRepoCreate(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	repo, err := client.CreateRepo(cmd.Context(), &github.NewRepoOptions{
		Name:        args[0],
		Description: repoDescription,
		Private:     repoPrivate,
		AutoInit:    repoAutoInit,
	})
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	fmt.Println(successStyle.Render("Created " + repo.GetFullName()))
	fmt.Println(repo.GetHTMLURL())

	return nil
}

func runRepoDelete(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	owner, repo, err := util.QualifyRepository(args[0], guard.Identity())
	if err != nil {
		return err
	}

	if !repoForce {
		confirmed, err := confirmDeletion(fmt.Sprintf("%s/%s", owner, repo))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := client.DeleteRepo(cmd.Context(), owner, repo); err != nil {
		return fmt.Errorf("failed to delete repository: %w", err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Deleted %s/%s", owner, repo)))

	return nil
}
