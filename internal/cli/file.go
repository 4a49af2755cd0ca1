package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillhq/ghops/internal/github"
	"github.com/quillhq/ghops/pkg/util"
)

var (
	fileDestination string
	fileBranch      string
	fileMessage     string
	fileOutput      string
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Upload and download repository files",
	Long: `Transfer single files to and from a repository via the contents API.

Examples:
  ghops file upload owner/repo ./notes.md
  ghops file upload owner/repo ./notes.md --dest docs/notes.md --branch develop
  ghops file download owner/repo docs/notes.md
  ghops file download owner/repo docs/notes.md --output ./notes.md`,
}

var fileUploadCmd = &cobra.Command{
	Use:   "upload <owner/repo> <local-path>",
	Short: "Upload a local file to a repository",
	Args:  cobra.ExactArgs(2),
	RunE:  runFileUpload,
}

var fileDownloadCmd = &cobra.Command{
	Use:   "download <owner/repo> <path>",
	Short: "Download a file from a repository",
	Args:  cobra.ExactArgs(2),
	RunE:  runFileDownload,
}

func init() {
	fileUploadCmd.Flags().StringVar(&fileDestination, "dest", "", "Destination path in the repository (defaults to the file name)")
	fileUploadCmd.Flags().StringVarP(&fileBranch, "branch", "b", "", "Target branch (defaults to the repository default branch)")
	fileUploadCmd.Flags().StringVarP(&fileMessage, "message", "m", "", "Commit message")

	fileDownloadCmd.Flags().StringVarP(&fileOutput, "output", "o", "", "Local output path (defaults to stdout)")

	fileCmd.AddCommand(fileUploadCmd)
	fileCmd.AddCommand(fileDownloadCmd)
	rootCmd.AddCommand(fileCmd)
}

func runFileUpload(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	owner, repo, err := util.QualifyRepository(args[0], guard.Identity())
	if err != nil {
		return err
	}

	localPath := args[1]
	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", localPath, err)
	}

	destination := fileDestination
	if destination == "" {
		destination = filepath.Base(localPath)
	}

	result, err := client.UploadFile(cmd.Context(), owner, repo, &github.UploadOptions{
		Path:    destination,
		Branch:  fileBranch,
		Message: fileMessage,
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Uploaded %s to %s/%s:%s", localPath, owner, repo, destination)))
	if result.Content != nil && result.Content.GetHTMLURL() != "" {
		fmt.Println(result.Content.GetHTMLURL())
	}

	return nil
}

func runFileDownload(cmd *cobra.Command, args []string) error {
	client, err := ensureClient()
	if err != nil {
		return err
	}

	owner, repo, err := util.QualifyRepository(args[0], guard.Identity())
	if err != nil {
		return err
	}

	path := args[1]
	content, err := client.DownloadFile(cmd.Context(), owner, repo, path)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", path, err)
	}

	if fileOutput == "" {
		_, err = os.Stdout.Write(content)
		return err
	}

	if err := os.WriteFile(fileOutput, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", fileOutput, err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Downloaded %s/%s:%s to %s", owner, repo, path, fileOutput)))

	return nil
}
