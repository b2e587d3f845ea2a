package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"ucs/internal/cli"
	"ucs/internal/envelope"
	"ucs/internal/render"
	"ucs/internal/summary"
)

// emit prints a successful outcome and hands a failed one back to run as an
// error, so that cobra stops and the return code propagates.
func (e *environment) emit(cmd *cobra.Command, outcome cli.Outcome) error {
	if !outcome.Succeeded() {
		return outcome
	}
	cli.Print(outcome, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return nil
}

func (e *environment) tableOptions(strict bool) render.Options {
	return render.Options{Width: e.flags.Width, Strict: strict}
}

// formatRaw renders body for the json and yaml formats.
func formatRaw(format cli.OutputFormat, body string) (string, error) {
	if format == cli.OutputFormatYAML {
		return render.RawYAML(body)
	}
	return render.RawJSON(body)
}

// parseBody parses an envelope returned with code. A body that is not an
// envelope is returned as the message of a failed request, and an empty
// body means the filters matched nothing.
func parseBody(code int, body string) (*envelope.Envelope, *cli.Outcome, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil, &summary.EmptyInputError{}
	}
	env, err := envelope.Parse(body)
	if err != nil {
		if code != 0 {
			outcome := cli.Outcome{ReturnCode: code, Message: body}
			return nil, &outcome, nil
		}
		return nil, nil, err
	}
	return env, nil, nil
}

func outputFormat(raw string) (cli.OutputFormat, error) {
	if err := cli.ValidateOutputFormat(raw); err != nil {
		return "", err
	}
	return cli.OutputFormat(strings.ToLower(raw)), nil
}
