package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"ucs/internal/client"
	"ucs/internal/filter"
	"ucs/pkg/logging"
)

// RunnerOptions configures a QueryRunner.
type RunnerOptions struct {
	Executor client.Executor
	Logger   *logging.Logger
	// Stderr receives the spinner.
	Stderr io.Writer
	// Quiet disables the spinner.
	Quiet bool
}

// QueryRunner sends queries through an Executor and reports progress.
type QueryRunner struct {
	executor client.Executor
	logger   *logging.Logger
	stderr   io.Writer
	quiet    bool
}

// NewQueryRunner creates a QueryRunner.
func NewQueryRunner(opts RunnerOptions) *QueryRunner {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	return &QueryRunner{
		executor: opts.Executor,
		logger:   opts.Logger,
		stderr:   stderr,
		quiet:    opts.Quiet,
	}
}

// Run sends q to path and returns the server's return code and body.
// Cancellation of ctx is reported as an *InterruptedError.
func (r *QueryRunner) Run(ctx context.Context, method, path string, q filter.Query) (int, string, error) {
	var s *spinner.Spinner
	if r.showSpinner() {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.stderr))
		s.Suffix = " Fetching " + path + "..."
		s.Start()
	}

	r.logger.Debug("QueryRunner", "%s %s with %d filter fragments", method, path, len(q.Fragments))
	code, body, err := r.executor.Send(ctx, method, path, q.Fragments, q.Timeout)

	if s != nil {
		s.Stop()
	}
	if err != nil {
		if client.IsInterrupted(err) {
			return 0, "", &InterruptedError{Reason: err}
		}
		return 0, "", err
	}
	return code, body, nil
}

func (r *QueryRunner) showSpinner() bool {
	if r.quiet {
		return false
	}
	f, ok := r.stderr.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
