// Package cli provides the command-line interface for ghops
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quillhq/ghops/internal/config"
	"github.com/quillhq/ghops/internal/credential"
	gherrors "github.com/quillhq/ghops/internal/errors"
	"github.com/quillhq/ghops/internal/github"
	"github.com/quillhq/ghops/internal/session"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	verbose  bool
	user     string
	token    string
	endpoint string
	timeout  int
)

// Global logger
var log = logrus.New()

// Config loader
var configLoader *config.Loader

// Authenticated API state, created lazily by the first command that needs it
var (
	guard      *credential.Guard
	apiSession *session.Session
	apiClient  github.Client
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "ghops",
	Short: "GitHub operations from the terminal",
	Long: `A terminal utility for day-to-day GitHub operations: repositories,
file uploads, workflows, gists, notifications and issues.

Credentials are taken from flags, the GITHUB_USER/GITHUB_TOKEN environment
variables, or an interactive prompt. The token is held in memory only and
is never written to the config file or logs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Inject config file values
		configLoader.InjectToCommand(cmd)

		// Re-read flags after injection
		verbose, _ = cmd.Flags().GetBool("verbose")
		user, _ = cmd.Flags().GetString("user")
		token, _ = cmd.Flags().GetString("token")
		endpoint, _ = cmd.Flags().GetString("endpoint")
		timeout, _ = cmd.Flags().GetInt("timeout")

		// Set log level
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.InfoLevel)
		}

		return nil
	},
}

func init() {
	// Initialize config loader
	configLoader = config.NewLoader()
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&user, "user", "u", "", "GitHub username")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "GitHub personal access token")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "GitHub API endpoint (for GitHub Enterprise)")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 30, "API request timeout in seconds")
}

func initConfig() {
	if err := configLoader.Initialize(); err != nil {
		// Config initialization failure is not fatal for all commands
		log.Debugf("Config initialization: %v", err)
	}

	// Bind flags to viper. The token flag is intentionally not bound: the
	// config file must never be a token source.
	viper := configLoader.Viper()
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	viper.SetDefault("verbose", false)
	viper.SetDefault("user", "")
	viper.SetDefault("endpoint", "")
	viper.SetDefault("timeout", 30)
}

// ensureClient resolves credentials and builds the authenticated client on
// first use. Subsequent calls reuse the same session so its state machine
// carries across operations.
func ensureClient() (github.Client, error) {
	if apiClient != nil {
		return apiClient, nil
	}

	cred, source, err := credential.Resolve(user, token)
	if err != nil {
		if errors.Is(err, gherrors.ErrMissingCredential) {
			return nil, gherrors.NewAuthError()
		}
		return nil, err
	}

	guard = credential.Hold(cred)

	// Anything logged from here on has the secret scrubbed even if a
	// message embeds it by accident
	log.SetFormatter(credential.NewRedactingFormatter(log.Formatter, guard))

	log.WithFields(logrus.Fields{
		"user":   guard.Identity(),
		"source": credential.FormatSource(source),
	}).Debug("Credentials resolved")

	opts := []session.Option{}
	if endpoint != "" {
		opts = append(opts, session.WithBaseURL(endpoint))
	}
	if timeout > 0 {
		opts = append(opts, session.WithTimeout(time.Duration(timeout)*time.Second))
	}

	apiSession, err = session.New(guard, opts...)
	if err != nil {
		return nil, err
	}

	apiClient = github.NewClient(apiSession)
	return apiClient, nil
}

// releaseCredentials zeroes the in-memory secret. Safe to call multiple
// times and with no credentials resolved.
func releaseCredentials() {
	if guard != nil {
		guard.Release()
	}
}

// Execute runs the root command
func Execute() {
	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer releaseCredentials()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Store context for subcommands
	rootCmd.SetContext(ctx)

	// Check if running with no arguments - launch the interactive menu
	if len(os.Args) == 1 {
		if err := RunMenu(ctx); err != nil {
			releaseCredentials()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := rootCmd.Execute(); err != nil {
		releaseCredentials()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetLogger returns the global logger
func GetLogger() *logrus.Logger {
	return log
}

// GetVerbose returns the verbose flag
func GetVerbose() bool {
	return verbose
}
