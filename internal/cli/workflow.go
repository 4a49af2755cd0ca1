package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/ghops/pkg/util"
)

var workflowRef string

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "List and trigger Actions workflows",
	Long: `Inspect the Actions workflows of a repository and dispatch runs.

Examples:
  ghops workflow list owner/repo
  ghops workflow run owner/repo ci.yml
  ghops workflow run owner/repo 12345678 --ref develop`,
}

var workflowListCmd = &cobra.Command{
	Use:   "list <owner/repo>",
	Short: "List workflows of a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkflowList,
}

var workflowRunCmd = &cobra.Command{
	Use:   "run <owner/repo> <workflow>",
	Short: "Trigger a workflow by ID or file name",
	Args:  cobra.ExactArgs(2),
	RunE:  runWorkflowRun,
}

func init() {
	workflowRunCmd.Flags().StringVarP(&workflowRef, "ref", "r", "", "Git ref to run the workflow on (defaults to main)")

	workflowCmd.AddCommand(workflowListCmd)
	workflowCmd.AddCommand(workflowRunCmd)
	rootCmd.AddCommand(workflowCmd)
}

func runWorkflowList(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	owner, repo, err := util.QualifyRepository(args[0], guard.Identity())
	if err != nil {
		return err
	}

	workflows, err := client.ListWorkflows(cmd.Context(), owner, repo)
	if err != nil {
		return fmt.Errorf("failed to list workflows: %w", err)
	}

	if len(workflows) == 0 {
		fmt.Println("No workflows found")
		return nil
	}

	for _, workflow := range workflows {
		fmt.Printf("%d  %s %s\n", workflow.GetID(), workflow.GetName(),
			mutedStyle.Render("("+workflow.GetState()+")"))
	}

	return nil
}

func runWorkflowRun(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	owner, repo, err := util.QualifyRepository(args[0], guard.Identity())
	if err != nil {
		return err
	}

	workflow := args[1]
	if err := client.TriggerWorkflow(cmd.Context(), owner, repo, workflow, workflowRef); err != nil {
		return fmt.Errorf("failed to trigger workflow %s: %w", workflow, err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Triggered workflow %s on %s/%s", workflow, owner, repo)))

	return nil
}
