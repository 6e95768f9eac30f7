package main

import (
	"github.com/amonks/kanban/internal/listflags"
	"github.com/amonks/kanban/issue"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the board",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listJSON   bool
	listStates []string
)

func init() {
	rootCmd.AddCommand(listCmd)
	addListFlags(listCmd)
}

func addListFlags(cmd *cobra.Command) {
	listflags.AddJSONFlag(cmd.Flags(), &listJSON)
	listflags.AddStateFlag(cmd.Flags(), &listStates)
}

func runList(cmd *cobra.Command, args []string) error {
	states, err := parseStates(listStates)
	if err != nil {
		return err
	}

	return withApp(func(a *app) error {
		b, err := a.tracker.Board()
		if err != nil {
			return err
		}
		if listJSON {
			return a.ui.RenderBoardJSON(b, states...)
		}
		return a.ui.RenderBoard(b, states...)
	})
}

func parseStates(values []string) ([]issue.State, error) {
	states := make([]issue.State, 0, len(values))
	for _, value := range values {
		state, err := issue.ParseState(value)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}
