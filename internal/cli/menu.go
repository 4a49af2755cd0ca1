package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/quillhq/ghops/internal/credential"
	gherrors "github.com/quillhq/ghops/internal/errors"
	"github.com/quillhq/ghops/internal/github"
	"github.com/quillhq/ghops/pkg/util"
)

var menuCmd = &cobra.Command{
	Use:     "menu",
	Aliases: []string{"interactive"},
	Short:   "Launch the interactive menu",
	Long: `Launch ghops in interactive mode.

The menu walks through the same operations as the subcommands. This is
equivalent to running 'ghops' with no arguments in an interactive terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunMenu(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

// isInteractive reports whether stdout is attached to a terminal
func isInteractive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RunMenu drives the interactive operation loop until the operator quits
// or aborts
func RunMenu(ctx context.Context) error {
	if !isInteractive() {
		fmt.Println("Interactive mode requires a terminal.")
		fmt.Println("Run 'ghops --help' for the available subcommands.")
		return nil
	}

	client, err := ensureMenuClient()
	if err != nil {
		return err
	}

	login, err := verifyCredentials(ctx, client)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("ghops") + mutedStyle.Render(" - signed in as "+login))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		action, err := selectAction()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		if action == "quit" {
			return nil
		}

		if err := dispatchAction(ctx, client, action); err != nil {
			if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, gherrors.ErrInputAborted) {
				continue
			}
			if errors.Is(err, gherrors.ErrUnauthorized) {
				return err
			}
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
		}
	}
}

// ensureMenuClient builds the authenticated client, collecting missing
// credentials through a form instead of the plain terminal prompt
func ensureMenuClient() (github.Client, error) {
	if apiClient != nil {
		return apiClient, nil
	}

	identity := user
	if identity == "" {
		identity = os.Getenv(credential.EnvGitHubUser)
	}
	secret := token
	if secret == "" {
		secret = os.Getenv(credential.EnvGitHubToken)
	}

	if identity == "" || secret == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("GitHub username").
					Value(&identity),
				huh.NewInput().
					Title("Personal access token").
					EchoMode(huh.EchoModePassword).
					Value(&secret),
			),
		).WithTheme(huh.ThemeCharm())

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, gherrors.ErrInputAborted
			}
			return nil, err
		}
	}

	user = identity
	token = secret
	return ensureClient()
}

func selectAction() (string, error) {
	var action string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("List repositories", "repo-list"),
					huh.NewOption("Create repository", "repo-create"),
					huh.NewOption("Delete repository", "repo-delete"),
					huh.NewOption("Upload file", "file-upload"),
					huh.NewOption("Download file", "file-download"),
					huh.NewOption("List workflows", "workflow-list"),
					huh.NewOption("Trigger workflow", "workflow-run"),
					huh.NewOption("Create gist", "gist-create"),
					huh.NewOption("List gists", "gist-list"),
					huh.NewOption("Create issue", "issue-create"),
					huh.NewOption("List issues", "issue-list"),
					huh.NewOption("Show notifications", "notification-list"),
					huh.NewOption("Mark notifications read", "notification-read"),
					huh.NewOption("Show profile", "user"),
					huh.NewOption("Show rate limits", "limits"),
					huh.NewOption("Quit", "quit"),
				).
				Value(&action),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return "", err
	}
	return action, nil
}

func dispatchAction(ctx context.Context, client github.Client, action string) error {
	switch action {
	case "repo-list":
		return menuRepoList(ctx, client)
	case "repo-create":
		return menuRepoCreate(ctx, client)
	case "repo-delete":
		return menuRepoDelete(ctx, client)
	case "file-upload":
		return menuFileUpload(ctx, client)
	case "file-download":
		return menuFileDownload(ctx, client)
	case "workflow-list":
		return menuWorkflowList(ctx, client)
	case "workflow-run":
		return menuWorkflowRun(ctx, client)
	case "gist-create":
		return menuGistCreate(ctx, client)
	case "gist-list":
		return menuGistList(ctx, client)
	case "issue-create":
		return menuIssueCreate(ctx, client)
	case "issue-list":
		return menuIssueList(ctx, client)
	case "notification-list":
		return menuNotificationList(ctx, client)
	case "notification-read":
		if err := client.MarkNotificationsRead(ctx); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("All notifications marked as read"))
		return nil
	case "user":
		return menuUser(ctx, client)
	case "limits":
		return runLimitsWith(ctx, client)
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

func menuRepoList(ctx context.Context, client github.Client) error {
	repos, err := client.ListRepos(ctx, nil)
	if err != nil {
		return err
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

func menuRepoCreate(ctx context.Context, client github.Client) error {
	var name, description string
	var private bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Repository name").Value(&name),
			huh.NewInput().Title("Description").Value(&description),
			huh.NewConfirm().Title("Private repository?").Value(&private),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	repo, err := client.CreateRepo(ctx, &github.NewRepoOptions{
		Name:        name,
		Description: description,
		Private:     private,
	})
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("Created " + repo.GetFullName()))
	return nil
}

func menuRepoDelete(ctx context.Context, client github.Client) error {
	repos, err := client.ListRepos(ctx, nil)
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		fmt.Println("No repositories found")
		return nil
	}

	options := make([]huh.Option[string], len(repos))
	for i, repo := range repos {
		options[i] = huh.NewOption(repo.GetFullName(), repo.GetFullName())
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Repository to delete").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCharm())
	if err := form.Run(); err != nil {
		return err
	}

	confirmed, err := confirmDeletion(selected)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted")
		return nil
	}

	owner, repo, err := splitFullName(selected)
	if err != nil {
		return err
	}
	if err := client.DeleteRepo(ctx, owner, repo); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("Deleted " + selected))
	return nil
}

func menuFileUpload(ctx context.Context, client github.Client) error {
	var repository, localPath, destination string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Repository (owner/repo)").Value(&repository),
			huh.NewInput().Title("Local file path").Value(&localPath),
			huh.NewInput().Title("Destination path (blank for file name)").Value(&destination),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	owner, repo, err := splitFullName(repository)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", localPath, err)
	}
	if destination == "" {
		destination = localPath
	}

	result, err := client.UploadFile(ctx, owner, repo, &github.UploadOptions{
		Path:    destination,
		Content: content,
	})
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Uploaded %s to %s:%s", localPath, repository, destination)))
	if result.Content != nil && result.Content.GetHTMLURL() != "" {
		fmt.Println(result.Content.GetHTMLURL())
	}
	return nil
}

func menuFileDownload(ctx context.Context, client github.Client) error {
	var repository, path, output string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Repository (owner/repo)").Value(&repository),
			huh.NewInput().Title("Path in the repository").Value(&path),
			huh.NewInput().Title("Local output path (blank to print)").Value(&output),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	owner, repo, err := splitFullName(repository)
	if err != nil {
		return err
	}

	content, err := client.DownloadFile(ctx, owner, repo, path)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(output, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Downloaded %s:%s to %s", repository, path, output)))
	return nil
}

func menuWorkflowList(ctx context.Context, client github.Client) error {
	repository, err := promptRepository()
	if err != nil {
		return err
	}
	owner, repo, err := splitFullName(repository)
	if err != nil {
		return err
	}

	workflows, err := client.ListWorkflows(ctx, owner, repo)
	if err != nil {
		return err
	}
	for _, workflow := range workflows {
		fmt.Printf("%d  %s %s\n", workflow.GetID(), workflow.GetName(),
			mutedStyle.Render("("+workflow.GetState()+")"))
	}
	return nil
}

func menuWorkflowRun(ctx context.Context, client github.Client) error {
	var repository, workflow, ref string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Repository (owner/repo)").Value(&repository),
			huh.NewInput().Title("Workflow ID or file name").Value(&workflow),
			huh.NewInput().Title("Git ref (blank for main)").Value(&ref),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	owner, repo, err := splitFullName(repository)
	if err != nil {
		return err
	}
	if err := client.TriggerWorkflow(ctx, owner, repo, workflow, ref); err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Triggered workflow %s on %s", workflow, repository)))
	return nil
}

func menuGistCreate(ctx context.Context, client github.Client) error {
	var localPath, description string
	var public bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Local file path").Value(&localPath),
			huh.NewInput().Title("Description").Value(&description),
			huh.NewConfirm().Title("Public gist?").Value(&public),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", localPath, err)
	}

	gist, err := client.CreateGist(ctx, description, public, map[string]string{
		localPath: string(content),
	})
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render("Created gist " + gist.GetID()))
	fmt.Println(gist.GetHTMLURL())
	return nil
}

func menuGistList(ctx context.Context, client github.Client) error {
	gists, err := client.ListGists(ctx)
	if err != nil {
		return err
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

func menuIssueCreate(ctx context.Context, client github.Client) error {
	var repository, title, body string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Repository (owner/repo)").Value(&repository),
			huh.NewInput().Title("Issue title").Value(&title),
			huh.NewText().Title("Issue body").Value(&body),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	owner, repo, err := splitFullName(repository)
	if err != nil {
		return err
	}

	issue, err := client.CreateIssue(ctx, owner, repo, title, body)
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Created issue #%d", issue.GetNumber())))
	fmt.Println(issue.GetHTMLURL())
	return nil
}

func menuIssueList(ctx context.Context, client github.Client) error {
	var repository, state string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Repository (owner/repo)").Value(&repository),
			huh.NewSelect[string]().
				Title("State").
				Options(
					huh.NewOption("Open", "open"),
					huh.NewOption("Closed", "closed"),
					huh.NewOption("All", "all"),
				).
				Value(&state),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return err
	}

	owner, repo, err := splitFullName(repository)
	if err != nil {
		return err
	}

	issues, err := client.ListIssues(ctx, owner, repo, state)
	if err != nil {
		return err
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

func menuNotificationList(ctx context.Context, client github.Client) error {
	notifications, err := client.ListNotifications(ctx, false)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}
	for _, notification := range notifications {
		fmt.Printf("%s  %s %s\n",
			notification.GetRepository().GetFullName(),
			notification.GetSubject().GetTitle(),
			mutedStyle.Render("("+notification.GetReason()+")"))
	}
	return nil
}

func menuUser(ctx context.Context, client github.Client) error {
	profile, err := client.GetUser(ctx)
	if err != nil {
		return err
	}
	fmt.Println(titleStyle.Render(profile.GetLogin()))
	fmt.Printf("  public repos: %d\n", profile.GetPublicRepos())
	fmt.Printf("  followers:    %d\n", profile.GetFollowers())
	return nil
}

func runLimitsWith(ctx context.Context, client github.Client) error {
	limits, err := client.GetRateLimit(ctx)
	if err != nil {
		return err
	}
	if core := limits.GetCore(); core != nil {
		fmt.Printf("core: %d/%d remaining\n", core.Remaining, core.Limit)
	}
	return nil
}

// verifyCredentials proves the token works before the menu loop starts.
// Subcommands get this check implicitly from their first API call; the menu
// does it up front so a bad token fails before any operation is chosen.
func verifyCredentials(ctx context.Context, client github.Client) (string, error) {
	profile, err := client.GetUser(ctx)
	if err != nil {
		return "", fmt.Errorf("credential verification failed: %w", err)
	}
	return profile.GetLogin(), nil
}

func promptRepository() (string, error) {
	var repository string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Repository (owner/repo)").Value(&repository),
		),
	).WithTheme(huh.ThemeCharm())
	if err := form.Run(); err != nil {
		return "", err
	}
	return repository, nil
}

// confirmDeletion asks the operator to confirm an irreversible delete
func confirmDeletion(name string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Permanently delete %s?", name)).
				Description("This cannot be undone.").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCharm())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

func splitFullName(repository string) (string, string, error) {
	return util.QualifyRepository(repository, guard.Identity())
}
