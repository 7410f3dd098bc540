package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/checklist/internal/checklist"
	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/ui"
)

const refHint = "Hint: run `checklist ls` to see valid indexes"

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the items of the current day",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session(cmd, false)
			if err != nil {
				return err
			}
			out := ui.DayPanel(sess.State().Active, sess.Label(), sess.Items(), group)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item to the current day",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return usageErrorf("add: empty text")
			}
			sess, err := app.session(cmd, false)
			if err != nil {
				return err
			}
			sess.AddItem(text)
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index|id> <text...>",
		Short: "Replace an item's text",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return usageErrorf("edit: empty text")
			}
			sess, it, err := app.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			sess.EditItem(it.ID, text)
			ui.OK(cmd.OutOrStdout(), "edited")
			return nil
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "done <index|id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle an item between done and pending",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, it, err := app.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			sess.ToggleComplete(it.ID)
			msg := "done: " + it.Text
			if it.Complete {
				msg = "reopened: " + it.Text
			}
			ui.OK(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index|id>",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, it, err := app.resolve(cmd, args[0])
			if err != nil {
				return err
			}
			sess.DeleteItem(it.ID)
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func newCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Carry yesterday's opening items into the current day",
		Long: "Copies the opening checklist of the day before the current date into the\n" +
			"current date, skipping items whose text is already there. Copied items\n" +
			"start pending. The closing checklist is never copied.",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session(cmd, false)
			if err != nil {
				return err
			}
			if !sess.CopyForward() {
				ui.OK(cmd.OutOrStdout(), "nothing to copy")
				return nil
			}
			ui.OK(cmd.OutOrStdout(), "copied opening items into "+sess.Label())
			return nil
		},
	}
}

func (a *App) resolve(cmd *cobra.Command, ref string) (*checklist.Session, model.Item, error) {
	sess, err := a.session(cmd, false)
	if err != nil {
		return nil, model.Item{}, err
	}
	it, err := sess.Resolve(ref)
	if errors.Is(err, checklist.ErrNoSuchItem) {
		return nil, model.Item{}, withHint(err, refHint)
	}
	return sess, it, err
}
