// Package cli holds the pieces shared by every ucs command.
//
// # Outcome
//
// Every command ends in an Outcome: a return code and a single message. A
// zero return code prints the message on stdout, anything else on stderr, and
// the process exits with the return code. FromError maps the typed errors of
// the filter, location, envelope, render, summary, client and config
// packages to a failed Outcome with the error's message.
//
// # Flags
//
// CommandFlags and RegisterCommonFlags define the global flags (--config-path,
// --debug, --quiet, --width). OutputFormat and the flag conflict checks cover
// the per-command --format and --summary options.
//
// # Running Queries
//
// QueryRunner sends a filter.Query through a client.Executor while showing a
// spinner on interactive terminals.
package cli
