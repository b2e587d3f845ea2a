package cmd

import (
	"context"
	"net/http"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/spf13/cobra"

	"ucs/internal/cli"
	"ucs/internal/filter"
	"ucs/internal/location"
)

const (
	groupCommaMessage       = "group name shouldn't contain comma"
	groupAllPresentMessage  = "location(s) may already be part of the group"
	groupSomePresentMessage = "devices(s) may already be part of the group\n"
	groupsPath              = "groups"
)

func newGroupCmd(env *environment) *cobra.Command {
	groupCmd := &cobra.Command{
		Use:   "group",
		Short: "Manage logical groups of locations",
	}

	groupCmd.AddCommand(&cobra.Command{
		Use:   "add <locations> <group-name>",
		Short: "Add locations to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.emit(cmd, env.groupAdd(cmd.Context(), args[0], args[1]))
		},
	})
	groupCmd.AddCommand(&cobra.Command{
		Use:   "remove <locations> <group-name>",
		Short: "Remove locations from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.emit(cmd, env.groupRemove(cmd.Context(), args[0], args[1]))
		},
	})
	groupCmd.AddCommand(&cobra.Command{
		Use:   "get <group-name>",
		Short: "Get the locations of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.emit(cmd, env.groupGet(cmd.Context(), args[0]))
		},
	})
	groupCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the groups created so far",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, body, err := env.send(cmd.Context(), http.MethodGet, groupsPath, env.userParam())
			if err != nil {
				return env.emit(cmd, cli.FromError(err))
			}
			return env.emit(cmd, cli.Outcome{ReturnCode: code, Message: body})
		},
	})
	return groupCmd
}

// send issues a request with the configured default timeout.
func (e *environment) send(ctx context.Context, method, path string, params ...filter.Param) (int, string, error) {
	fragments := make([]string, 0, len(params))
	for _, p := range params {
		fragments = append(fragments, p.String())
	}
	q := filter.Query{Fragments: fragments, Timeout: filter.EffectiveTimeout(0, e.config.Timeout)}
	return e.runner.Run(ctx, method, path, q)
}

func (e *environment) userParam() filter.Param {
	return filter.Param{Key: "user", Value: e.currentUser()}
}

func groupPath(name string) string {
	return groupsPath + "/" + name
}

func expandDevices(expr string) ([]string, error) {
	if err := location.ValidateInput("location", expr); err != nil {
		return nil, err
	}
	return location.ExpandList(expr)
}

func (e *environment) groupGet(ctx context.Context, name string) cli.Outcome {
	code, body, err := e.send(ctx, http.MethodGet, groupPath(name), e.userParam())
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: body}
}

// groupAdd only sends the devices that are not already members of the group.
func (e *environment) groupAdd(ctx context.Context, locations, name string) cli.Outcome {
	if strings.Contains(name, ",") {
		return cli.Outcome{ReturnCode: ExitCodeUsage, Message: groupCommaMessage}
	}
	devices, err := expandDevices(locations)
	if err != nil {
		return cli.FromError(err)
	}

	existing := mapset.NewSet()
	if current := e.groupGet(ctx, name); current.Succeeded() {
		for _, d := range strings.Split(current.Message, ",") {
			existing.Add(strings.TrimSpace(d))
		}
	} else {
		e.logger.Debug("Group", "Treating group %s as empty: %s", name, current.Message)
	}

	var toAdd []string
	for _, d := range devices {
		if !existing.Contains(d) {
			toAdd = append(toAdd, d)
		}
	}
	if len(toAdd) == 0 {
		return cli.Success(groupAllPresentMessage)
	}
	prefix := ""
	if len(toAdd) != len(devices) {
		prefix = groupSomePresentMessage
	}

	code, body, err := e.send(ctx, http.MethodPut, groupPath(name),
		filter.Param{Key: "devices", Value: strings.Join(toAdd, ",")}, e.userParam())
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: prefix + body}
}

func (e *environment) groupRemove(ctx context.Context, locations, name string) cli.Outcome {
	if strings.Contains(name, ",") {
		return cli.Outcome{ReturnCode: ExitCodeUsage, Message: groupCommaMessage}
	}
	devices, err := expandDevices(locations)
	if err != nil {
		return cli.FromError(err)
	}

	code, body, err := e.send(ctx, http.MethodDelete, groupPath(name),
		filter.Param{Key: "devices", Value: strings.Join(devices, ",")}, e.userParam())
	if err != nil {
		return cli.FromError(err)
	}
	return cli.Outcome{ReturnCode: code, Message: body}
}
