// Package logging provides the structured logger used by every ucs command.
//
// The logger is built on Go's slog package. Each record carries a subsystem
// attribute so that output from the filter builder, the HTTP executor and the
// renderers can be told apart in the log file.
//
// # Lifecycle
//
// There is no package-level logger. A command invocation creates one Logger,
// hands it to the components it constructs and closes it when the command
// returns:
//
//	lgr, err := logging.New(logging.Options{
//		Level:    logging.LevelWarn,
//		Output:   os.Stderr,
//		FilePath: filepath.Join(home, "ucs_cli.log"),
//	})
//	if err != nil {
//		return err
//	}
//	defer lgr.Close()
//
//	lgr.Debug("QueryRunner", "URL for request is %s", url)
//	lgr.Error("HttpClient", err, "request to %s failed", url)
//
// # Levels
//
// Output receives records at or above Level. The optional log file receives
// every record from debug upwards, which keeps a full trace on disk while the
// terminal only shows warnings unless --debug is given.
//
// Tests use Discard to obtain a logger that drops everything.
package logging
