package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/spf13/cobra"

	"ucs/internal/cli"
	"ucs/internal/client"
	"ucs/internal/config"
	"ucs/pkg/logging"
)

// Exit codes for CLI commands. Commands may return other codes through a
// cli.Outcome, e.g. 2 for a malformed group name.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeUsage indicates an argument the command refuses before sending
	// anything to the server.
	ExitCodeUsage = 2
)

var version = "dev"

// SetVersion sets the version reported by the version command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return version
}

// ExecutorFactory creates the query executor for a loaded configuration.
type ExecutorFactory func(cfg config.UcsConfig, logger *logging.Logger, stderr io.Writer) client.Executor

func newHTTPExecutor(cfg config.UcsConfig, logger *logging.Logger, stderr io.Writer) client.Executor {
	return client.NewHTTPExecutor(client.Options{
		BaseURL: cfg.BaseURL(),
		Logger:  logger,
		Stderr:  stderr,
	})
}

// environment is the state of one invocation. Commands read the loaded
// configuration and the query runner from it once the root pre-run hook
// has populated them.
type environment struct {
	flags cli.CommandFlags

	stdout io.Writer
	stderr io.Writer

	newExecutor      ExecutorFactory
	lookupEnv        func(string) (string, bool)
	systemConfigPath string
	currentUser      func() string

	config config.UcsConfig
	logger *logging.Logger
	runner *cli.QueryRunner
}

func newEnvironment(stdout, stderr io.Writer) *environment {
	return &environment{
		stdout:      stdout,
		stderr:      stderr,
		newExecutor: newHTTPExecutor,
		lookupEnv:   os.LookupEnv,
		currentUser: currentUsername,
	}
}

func currentUsername() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

// setup validates the raw input and wires logging, configuration and the
// query runner for the selected command.
func (e *environment) setup(cmd *cobra.Command, args []string) error {
	if err := cli.CheckRestrictedCharacters(append(cli.FlagValues(cmd), args...)); err != nil {
		return err
	}

	level := logging.LevelWarn
	if e.flags.Debug {
		level = logging.LevelDebug
	}
	logger, err := logging.New(logging.Options{Level: level, Output: e.stderr})
	if err != nil {
		return err
	}
	e.logger = logger

	loader := config.NewLoader(e.flags.ConfigPath, logger)
	loader.LookupEnv = e.lookupEnv
	if e.systemConfigPath != "" {
		loader.SystemConfigPath = e.systemConfigPath
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	e.config = cfg

	if !e.flags.Debug && cfg.LogLevel != "" {
		if parsed, perr := logging.ParseLevel(cfg.LogLevel); perr == nil {
			level = parsed
		}
	}
	if cfg.LogFile != "" || level != logging.LevelWarn {
		_ = e.logger.Close()
		e.logger, err = logging.New(logging.Options{Level: level, Output: e.stderr, FilePath: cfg.LogFile})
		if err != nil {
			return err
		}
	}

	e.logger.Debug("Root", "Running %s against %s", cmd.CommandPath(), cfg.BaseURL())
	e.runner = cli.NewQueryRunner(cli.RunnerOptions{
		Executor: e.newExecutor(cfg, e.logger, e.stderr),
		Logger:   e.logger,
		Stderr:   e.stderr,
		Quiet:    e.flags.Quiet,
	})
	return nil
}

func (e *environment) close() {
	if e.logger != nil {
		_ = e.logger.Close()
	}
}

// newRootCmd builds the command tree for one invocation.
func newRootCmd(env *environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ucs",
		Short: "Query and manage the cluster from the command line",
		Long: `ucs queries the cluster's REST server for RAS events, environmental
telemetry, inventory and state, and manages logical device groups and alerts.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		// Errors are printed by run as a single outcome line.
		SilenceErrors:     true,
		PersistentPreRunE: env.setup,
		Version:           version,
	}
	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)
	rootCmd.SetVersionTemplate(`{{printf "ucs version %s\n" .Version}}`)

	cli.RegisterCommonFlags(rootCmd, &env.flags)

	rootCmd.AddCommand(newViewCmd(env))
	rootCmd.AddCommand(newGroupCmd(env))
	rootCmd.AddCommand(newAlertCmd(env))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// run executes args and returns the process exit code. Every result is
// printed as one outcome: stdout on success, stderr otherwise.
func run(ctx context.Context, env *environment, args []string) int {
	defer env.close()

	rootCmd := newRootCmd(env)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitCodeSuccess
	}
	outcome := cli.FromError(err)
	cli.Print(outcome, env.stdout, env.stderr)
	return outcome.ReturnCode
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, newEnvironment(os.Stdout, os.Stderr), os.Args[1:])
	stop()
	os.Exit(code)
}
