package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/ghops/pkg/util"
)

var (
	issueBody  string
	issueState string
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Create and list issues",
	Long: `Open issues on a repository and list existing ones.

Examples:
  ghops issue create owner/repo "Crash on startup" --body "Stack trace attached"
  ghops issue list owner/repo
  ghops issue list owner/repo --state closed`,
}

var issueCreateCmd = &cobra.Command{
	Use:   "create <owner/repo> <title>",
	Short: "Open a new issue",
	Args:  cobra.ExactArgs(2),
	RunE:  runIssueCreate,
}

var issueListCmd = &cobra.Command{
	Use:   "list <owner/repo>",
	Short: "List issues of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssueList,
}

func init() {
	issueCreateCmd.Flags().StringVarP(&issueBody, "body", "b", "", "Issue body")
	issueListCmd.Flags().StringVarP(&issueState, "state", "s", "open", "Filter by state (open, closed, all)")

	issueCmd.AddCommand(issueCreateCmd)
	issueCmd.AddCommand(issueListCmd)
	rootCmd.AddCommand(issueCmd)
}

func runIssueCreate(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	owner, repo, err := util.QualifyRepository(args[0], guard.Identity())
	if err != nil {
		return err
	}

	issue, err := client.CreateIssue(cmd.Context(), owner, repo, args[1], issueBody)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Created issue #%d", issue.GetNumber())))
	fmt.Println(issue.GetHTMLURL())

	return nil
}

func runIssueList(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	owner, repo, err := util.QualifyRepository(args[0], guard.Identity())
	if err != nil {
		return err
	}

	issues, err := client.ListIssues(cmd.Context(), owner, repo, issueState)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	if len(issues) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, issue := range issues {
		fmt.Printf("#%d  %s %s\n", issue.GetNumber(), issue.GetTitle(),
			mutedStyle.Render("("+issue.GetState()+")"))
	}
	fmt.Printf("\n%d issues\n", len(issues))

	return nil
}
