package main

import (
	"strings"

	"github.com/amonks/kanban/issue"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <description>...",
	Short: "Add an open issue at the top of the board",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var addDue string

var deleteCmd = &cobra.Command{
	Use:     "delete <index>...",
	Aliases: []string{"rm"},
	Short:   "Delete issues",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

var moveCmd = &cobra.Command{
	Use:     "move <state> <index>...",
	Aliases: []string{"mv"},
	Short:   "Move issues to open, review, or done",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runMove,
}

var prioCmd = &cobra.Command{
	Use:   "prio <top|bottom|up|down> <index>",
	Short: "Reorder an issue among issues in the same state",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrio,
}

var editCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit an issue's description in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var dueCmd = &cobra.Command{
	Use:   "due <index> [date]",
	Short: "Set an issue's due date, or clear it when no date is given",
	Long: `Set an issue's due date, or clear it when no date is given.

Dates may be YYYY-MM-DD, today, tomorrow, a weekday, "in 3 days",
"in 2 weeks", or other English phrases such as "next friday".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDue,
}

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Delete every issue that is not done",
	Args:  cobra.NoArgs,
	RunE:  runFlush,
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Reverse the most recent change",
	Args:  cobra.NoArgs,
	RunE:  runUndo,
}

func init() {
	rootCmd.AddCommand(addCmd, deleteCmd, moveCmd, prioCmd, editCmd, dueCmd, flushCmd, undoCmd)

	addCmd.Flags().StringVar(&addDue, "due", "", "Due date")
}

func runAdd(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")
	return withApp(func(a *app) error {
		if _, err := a.tracker.Add(description, addDue); err != nil {
			return err
		}
		return a.renderBoard()
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	indices, err := parseIndices(args)
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		if err := a.tracker.Delete(indices); err != nil {
			return err
		}
		return a.renderBoard()
	})
}

func runMove(cmd *cobra.Command, args []string) error {
	state, err := issue.ParseState(args[0])
	if err != nil {
		return err
	}
	indices, err := parseIndices(args[1:])
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		if err := a.tracker.Move(state, indices); err != nil {
			return err
		}
		return a.renderBoard()
	})
}

func runPrio(cmd *cobra.Command, args []string) error {
	direction, err := issue.ParseDirection(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		if _, err := a.tracker.Prio(direction, index); err != nil {
			return err
		}
		return a.renderBoard()
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	return withApp(func(a *app) error {
		if err := a.tracker.Edit(index); err != nil {
			return err
		}
		return a.renderBoard()
	})
}

func runDue(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	return withApp(func(a *app) error {
		if err := a.tracker.Due(index, text); err != nil {
			return err
		}
		return a.renderBoard()
	})
}

func runFlush(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		count, err := a.tracker.Flush()
		if err != nil {
			return err
		}
		if err := a.ui.RenderMessage("Flushed %s.", pluralIssues(count)); err != nil {
			return err
		}
		return a.renderBoard()
	})
}

func runUndo(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		record, err := a.tracker.Undo()
		if err != nil {
			return err
		}
		if err := a.ui.RenderMessage("Undid %s.", record.Kind()); err != nil {
			return err
		}
		return a.renderBoard()
	})
}
