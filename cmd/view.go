package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"ucs/internal/cli"
	"ucs/internal/config"
	"ucs/internal/envelope"
	"ucs/internal/filter"
	"ucs/internal/render"
	"ucs/internal/summary"
)

// viewFlag selects the optional filter flags a view accepts.
type viewFlag uint

const (
	flagTimeRange viewFlag = 1 << iota
	flagLimit
	flagLocations
	flagJobID
	flagEventFilters
	flagSernum
	flagDiagID
	flagTimeout
	flagAll
	flagSummary
)

// locationArg says whether a view takes the locations as a positional
// argument.
type locationArg int

const (
	locationNone locationArg = iota
	locationRequired
	locationOptional
)

// viewDefinition describes one "ucs view" subcommand declaratively: which
// endpoint it queries, which filters it accepts and which logical columns
// it shows.
type viewDefinition struct {
	name  string
	short string
	path  string

	flags    viewFlag
	location locationArg

	columns    []string
	allColumns []string

	// grouped views receive an object of envelopes, one per node type.
	grouped bool
	// omitDefaultLimit is set for endpoints that do not page.
	omitDefaultLimit bool
	// validate checks combinations of options before the query is built.
	validate func(o *viewOptions) error
}

func (d viewDefinition) has(f viewFlag) bool {
	return d.flags&f != 0
}

// columnsFor returns the logical column order for the --all setting.
func (d viewDefinition) columnsFor(all bool) []string {
	if all && len(d.allColumns) > 0 {
		return d.allColumns
	}
	return d.columns
}

// viewOptions holds the parsed flag values of one view invocation.
type viewOptions struct {
	startTime string
	endTime   string
	limit     int
	limitSet  bool
	locations string
	jobID     string
	eventType string
	severity  string
	exclude   string
	include   string
	sernum    string
	diagID    string
	format    string
	timeout   int
	all       bool
	summary   bool

	formatSet bool
	strict    bool
}

func newViewCmd(env *environment) *cobra.Command {
	var strict bool
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "View data in the database",
		Long: `View RAS events, environmental telemetry, inventory and state data
stored by the cluster's REST server.`,
	}
	viewCmd.PersistentFlags().BoolVar(&strict, "strict-columns", false, "Fail when a displayed column is missing from the returned schema")

	for _, def := range viewDefinitions {
		viewCmd.AddCommand(newViewSubcommand(env, def, &strict))
	}
	return viewCmd
}

func newViewSubcommand(env *environment, def viewDefinition, strict *bool) *cobra.Command {
	o := &viewOptions{}

	use := def.name
	args := cobra.NoArgs
	switch def.location {
	case locationRequired:
		use += " <locations>"
		args = cobra.ExactArgs(1)
	case locationOptional:
		use += " [locations]"
		args = cobra.MaximumNArgs(1)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: def.short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				o.locations = args[0]
			}
			o.limitSet = cmd.Flags().Changed("limit")
			o.formatSet = cmd.Flags().Changed("format")
			o.strict = *strict
			return env.emit(cmd, env.runView(cmd, def, o))
		},
	}

	f := cmd.Flags()
	if def.has(flagTimeRange) {
		f.StringVar(&o.startTime, "start_time", "", `Start time. The preferred format is "YYYY-MM-DD HH:MM:SS.[f]"`)
		f.StringVar(&o.endTime, "end_time", "", `End time. The preferred format is "YYYY-MM-DD HH:MM:SS.[f]"`)
	}
	if def.has(flagLimit) {
		f.IntVar(&o.limit, "limit", filter.DefaultLimit, "Maximum number of records to retrieve")
	}
	if def.has(flagLocations) {
		f.StringVar(&o.locations, "locations", "", "Comma separated location list or location group. Example: R2-CH0[1-4]-N[1-4]")
	}
	if def.has(flagJobID) {
		f.StringVar(&o.jobID, "jobid", "", "Filter by job id")
	}
	if def.has(flagEventFilters) {
		f.StringVar(&o.eventType, "event_type", "", "Filter by event type. Example: RasGen")
		f.StringVar(&o.severity, "severity", "", "Filter by severity {INFO, FATAL, ERROR, CRITICAL}. Wildcards are not accepted")
		f.StringVar(&o.exclude, "exclude", "", "Regular expression of events to exclude")
		f.StringVar(&o.include, "include", "", "Regular expression of events to include")
	}
	if def.has(flagSernum) {
		f.StringVar(&o.sernum, "sernum", "", "Filter by serial number")
	}
	if def.has(flagDiagID) {
		f.StringVar(&o.diagID, "diagid", "", "Filter by diagnostics id")
	}
	if def.has(flagTimeout) {
		f.IntVar(&o.timeout, "timeout", 0, fmt.Sprintf("Timeout of the HTTP request in seconds, 0 uses the configured timeout (default %ds)", config.DefaultTimeoutSeconds))
	}
	if def.has(flagAll) {
		f.BoolVar(&o.all, "all", false, "Show all output fields")
	}
	if def.has(flagSummary) {
		f.BoolVar(&o.summary, "summary", false, "Show grouped counts instead of the event list")
	}
	cli.RegisterFormatFlag(cmd, &o.format)
	return cmd
}

// buildSpec converts the view options into a filter specification.
func (e *environment) buildSpec(def viewDefinition, o *viewOptions) (filter.Spec, error) {
	spec := filter.Spec{
		StartTime:        o.startTime,
		EndTime:          o.endTime,
		JobID:            o.jobID,
		Location:         o.locations,
		Severity:         o.severity,
		EventType:        o.eventType,
		Exclude:          o.exclude,
		Include:          o.include,
		Timeout:          o.timeout,
		DefaultTimeout:   e.config.Timeout,
		OmitDefaultLimit: def.omitDefaultLimit,
	}
	if o.limitSet {
		spec.Limit = filter.IntPtr(o.limit)
	}
	if o.sernum != "" {
		spec.Extra = append(spec.Extra, filter.Param{Key: "Sernum", Value: o.sernum})
	}
	if o.diagID != "" {
		spec.Extra = append(spec.Extra, filter.Param{Key: "DiagId", Value: o.diagID})
	}
	if def.has(flagEventFilters) {
		persisted, err := config.FilterFiles(e.config.ConfigDir)
		if err != nil {
			return filter.Spec{}, err
		}
		spec.Persisted = persisted
	}
	return spec, nil
}

// runView queries the view's endpoint and renders the result.
func (e *environment) runView(cmd *cobra.Command, def viewDefinition, o *viewOptions) cli.Outcome {
	format, err := outputFormat(o.format)
	if err != nil {
		return cli.FromError(err)
	}
	if err := cli.CheckSummaryConflict(o.summary, o.formatSet); err != nil {
		return cli.FromError(err)
	}
	if def.validate != nil {
		if err := def.validate(o); err != nil {
			return cli.FromError(err)
		}
	}

	spec, err := e.buildSpec(def, o)
	if err != nil {
		return cli.FromError(err)
	}
	query, err := filter.Build(spec)
	if err != nil {
		return cli.FromError(err)
	}

	code, body, err := e.runner.Run(cmd.Context(), http.MethodGet, def.path, query)
	if err != nil {
		return cli.FromError(err)
	}

	if format != cli.OutputFormatTable {
		out, err := formatRaw(format, body)
		if err != nil {
			return cli.FromError(err)
		}
		return cli.Outcome{ReturnCode: code, Message: out}
	}

	if def.grouped {
		return e.renderGroup(def, o, code, body)
	}

	env, failed, err := parseBody(code, body)
	if err != nil {
		return cli.FromError(err)
	}
	if failed != nil {
		return *failed
	}
	if o.summary && !env.Failed() {
		return summarize(code, env)
	}

	out, err := render.Table(env, def.columnsFor(o.all), e.tableOptions(o.strict))
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: out}
}

// renderGroup renders one table per node type of a grouped response.
func (e *environment) renderGroup(def viewDefinition, o *viewOptions, code int, body string) cli.Outcome {
	if strings.TrimSpace(body) == "" {
		return cli.FromError(&summary.EmptyInputError{})
	}
	group, err := envelope.ParseGroup(body)
	if err != nil {
		if code != 0 {
			return cli.Outcome{ReturnCode: code, Message: body}
		}
		return cli.FromError(err)
	}

	sections := make([]string, 0, len(group))
	for _, named := range group {
		out, err := render.Table(named.Envelope, def.columnsFor(o.all), e.tableOptions(o.strict))
		if err != nil {
			return cli.FromError(err)
		}
		sections = append(sections, strings.ToUpper(named.Name)+"\n"+out)
	}
	return cli.Outcome{ReturnCode: code, Message: strings.Join(sections, "\n\n")}
}

// summarize renders the grouped RAS event report for a successful event
// envelope.
func summarize(code int, env *envelope.Envelope) cli.Outcome {
	report, err := summary.Summarize(env)
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: report}
}
