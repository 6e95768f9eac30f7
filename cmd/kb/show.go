package main

import (
	"github.com/amonks/kanban/internal/listflags"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show an issue in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List undo history, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyJSON bool

func init() {
	rootCmd.AddCommand(showCmd, historyCmd)

	listflags.AddJSONFlag(historyCmd.Flags(), &historyJSON)
}

func runShow(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		b, err := a.tracker.Board()
		if err != nil {
			return err
		}
		return a.ui.RenderIssue(b, index)
	})
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		records, err := a.tracker.History()
		if err != nil {
			return err
		}
		if historyJSON {
			return a.ui.RenderHistoryJSON(records)
		}
		return a.ui.RenderHistory(records)
	})
}
