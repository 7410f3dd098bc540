package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/checklist/internal/engine"
	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/ui"
)

func newDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "date [prev|next|today|set <YYYY-MM-DD>]",
		Short: "Show or move the current date",
		Args:  usageArgs(cobra.RangeArgs(0, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.session(cmd, false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "%s (%s)\n", sess.Label(), sess.State().CurrentDate)
				return nil
			}

			if args[0] == "set" {
				if len(args) != 2 {
					return usageErrorf("date set: want exactly one date")
				}
				d, err := model.ParseDateKey(args[1])
				if err != nil {
					return withHint(err, "dates look like 2024-01-05")
				}
				if app.cal.Before(app.cal.Today(), d) {
					return usageErrorf("date set: %s is in the future", d)
				}
				sess.GoTo(d)
				ui.OK(out, sess.Label())
				return nil
			}

			if len(args) != 1 {
				return usageErrorf("date %s: unexpected argument %q", args[0], args[1])
			}
			dir, err := engine.ParseDirection(args[0])
			if err != nil {
				return withHint(err, "usage: "+cmd.UseLine())
			}
			if dir == engine.Next && !sess.CanGoForward() {
				return usageErrorf("already on today")
			}
			sess.ChangeDate(dir)
			ui.OK(out, sess.Label())
			return nil
		},
	}
}
