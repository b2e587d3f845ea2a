package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valyala/fastjson"

	"ucs/internal/cli"
	"ucs/internal/envelope"
	"ucs/internal/filter"
	"ucs/internal/render"
)

const (
	alertIDConflictMessage = "Can only combine type and location inputs, not ids"
	alertMissingMessage    = "Need to specify either a location, type or id"
	alertEventsHeading     = "RAS EVENTS:"
)

var (
	alertHeader = []string{"ID", "TYPE", "DESCRIPTION", "CREATION", "STATE"}
	eventHeader = []string{"ID", "TYPE", "NAME", "LOCATION", "SEVERITY", "DATA", "TIMESTAMP"}
)

type alertCloseOptions struct {
	location  string
	alertType string
	id        string
}

func (o alertCloseOptions) validate() error {
	if o.id != "" && (o.location != "" || o.alertType != "") {
		return &cli.UserConflictError{Message: alertIDConflictMessage}
	}
	if o.id == "" && o.location == "" && o.alertType == "" {
		return &cli.UserConflictError{Message: alertMissingMessage}
	}
	return nil
}

func newAlertCmd(env *environment) *cobra.Command {
	alertCmd := &cobra.Command{
		Use:   "alert",
		Short: "List, view and close RAS event alerts",
	}

	for _, name := range []string{"list", "history"} {
		name := name // per-iteration copy (go < 1.22 loop semantics)
		var format string
		c := &cobra.Command{
			Use:   name,
			Short: fmt.Sprintf("Show the %s of RAS event alerts", name),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return env.emit(cmd, env.alertList(cmd, "alert/"+name, format))
			},
		}
		cli.RegisterFormatFlag(c, &format)
		alertCmd.AddCommand(c)
	}

	var viewFormat string
	viewCmd := &cobra.Command{
		Use:   "view <id>",
		Short: "View the RAS events of an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.emit(cmd, env.alertView(cmd, args[0], viewFormat))
		},
	}
	cli.RegisterFormatFlag(viewCmd, &viewFormat)
	alertCmd.AddCommand(viewCmd)

	var closeOpts alertCloseOptions
	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Close alerts by location and type, or by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.emit(cmd, env.alertClose(cmd, closeOpts))
		},
	}
	closeCmd.Flags().StringVar(&closeOpts.location, "location", "", "Close the alerts of a location")
	closeCmd.Flags().StringVar(&closeOpts.alertType, "type", "", "Close the alerts of an alert type")
	closeCmd.Flags().StringVar(&closeOpts.id, "id", "", "Close the alert with this id")
	alertCmd.AddCommand(closeCmd)

	return alertCmd
}

func (e *environment) alertList(cmd *cobra.Command, path, rawFormat string) cli.Outcome {
	format, err := outputFormat(rawFormat)
	if err != nil {
		return cli.FromError(err)
	}
	code, body, err := e.send(cmd.Context(), http.MethodGet, path, e.userParam())
	if err != nil {
		return cli.FromError(err)
	}
	if code != 0 {
		return cli.Outcome{ReturnCode: code, Message: body}
	}
	if format != cli.OutputFormatTable {
		return rawOutcome(format, code, body)
	}

	alerts, err := parseAlerts(body)
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: render.Rows(alertHeader, alertRows(alerts), render.ResolveWidth(e.flags.Width))}
}

func (e *environment) alertView(cmd *cobra.Command, id, rawFormat string) cli.Outcome {
	format, err := outputFormat(rawFormat)
	if err != nil {
		return cli.FromError(err)
	}
	code, body, err := e.send(cmd.Context(), http.MethodPut, "alert/view",
		filter.Param{Key: "id", Value: id}, e.userParam())
	if err != nil {
		return cli.FromError(err)
	}
	if code != 0 {
		return cli.Outcome{ReturnCode: code, Message: body}
	}
	if format != cli.OutputFormatTable {
		return rawOutcome(format, code, body)
	}

	alerts, err := parseAlerts(body)
	if err != nil {
		return cli.FromError(err)
	}
	width := render.ResolveWidth(e.flags.Width)
	var b strings.Builder
	b.WriteString(render.Rows(alertHeader, alertRows(alerts), width))
	b.WriteString("\n\n" + alertEventsHeading)
	for _, a := range alerts {
		b.WriteString("\n" + render.Rows(eventHeader, eventRows(a.GetArray("events")), width))
	}
	return cli.Outcome{ReturnCode: code, Message: b.String()}
}

func (e *environment) alertClose(cmd *cobra.Command, o alertCloseOptions) cli.Outcome {
	if err := o.validate(); err != nil {
		return cli.FromError(err)
	}
	params := []filter.Param{
		{Key: "location", Value: o.location},
		{Key: "type", Value: o.alertType},
		{Key: "id", Value: o.id},
	}
	var set []filter.Param
	for _, p := range params {
		if p.Value != "" {
			set = append(set, p)
		}
	}
	set = append(set, e.userParam())

	code, body, err := e.send(cmd.Context(), http.MethodPut, "alert/close", set...)
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: body}
}

func rawOutcome(format cli.OutputFormat, code int, body string) cli.Outcome {
	out, err := formatRaw(format, body)
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: out}
}

func parseAlerts(body string) ([]*fastjson.Value, error) {
	v, err := fastjson.Parse(body)
	if err != nil {
		return nil, &envelope.MalformedEnvelopeError{Raw: body, Reason: "invalid JSON"}
	}
	alerts, err := v.Array()
	if err != nil {
		return nil, &envelope.MalformedEnvelopeError{Raw: body, Reason: "expected an array of alerts"}
	}
	return alerts, nil
}

func alertRows(alerts []*fastjson.Value) [][]string {
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		rows = append(rows, []string{
			field(a, "id"),
			field(a, "type"),
			field(a, "description"),
			microsTimestamp(a, "creationtime"),
			field(a, "state"),
		})
	}
	return rows
}

func eventRows(events []*fastjson.Value) [][]string {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			field(ev, "id"),
			field(ev, "eventtype"),
			field(ev, "name"),
			field(ev, "location"),
			field(ev, "severity"),
			field(ev, "instancedata"),
			microsTimestamp(ev, "timestamp"),
		})
	}
	return rows
}

// field returns a member for display: strings unquoted, missing or null as
// the null marker, anything else as compact JSON.
func field(v *fastjson.Value, key string) string {
	m := v.Get(key)
	if m == nil || m.Type() == fastjson.TypeNull {
		return envelope.NullDisplay
	}
	if m.Type() == fastjson.TypeString {
		return string(m.GetStringBytes())
	}
	return m.String()
}

// microsTimestamp formats a microseconds-since-epoch member in local time.
func microsTimestamp(v *fastjson.Value, key string) string {
	m := v.Get(key)
	if m == nil || m.Type() != fastjson.TypeNumber {
		return field(v, key)
	}
	return time.UnixMicro(m.GetInt64()).Local().Format(filter.TimestampLayout)
}
