package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bnema/helm-threads-cli/internal/application"
	"github.com/bnema/helm-threads-cli/internal/domain"
)

func newThreadCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread",
		Short: "Manage tracked threads",
	}

	cmd.AddCommand(
		newThreadAddCmd(app),
		newThreadListCmd(app),
		newThreadShowCmd(app),
		newThreadTouchCmd(app),
		newThreadBumpCmd(app),
		newThreadDoneCmd(app),
		newThreadStatusCmd(app, "pause", "Set a thread aside intentionally", domain.StatusPaused),
		newThreadStatusCmd(app, "resume", "Bring a paused thread back to active", domain.StatusActive),
		newThreadStatusCmd(app, "complete", "Archive a thread with dignity", domain.StatusComplete),
	)

	return cmd
}

func newThreadAddCmd(app *app) *cobra.Command {
	var description, task string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a new thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thread, err := app.threads.Create(cmd.Context(), domain.ThreadID(uuid.NewString()), args[0], description, task)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", thread.ID, thread.Name)
			return err
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "what this thread is about")
	cmd.Flags().StringVarP(&task, "task", "t", "", "current focus")

	return cmd
}

func newThreadListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked threads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := app.threads.GetStatusAll(cmd.Context())
			if err != nil {
				return err
			}

			for _, status := range statuses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d/100\n",
					status.Thread.ID, status.Thread.Name, status.Label(), status.Momentum)
			}

			return nil
		},
	}
}

func newThreadShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one thread's health",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.threads.GetStatus(cmd.Context(), domain.ThreadID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeThreadJSON(cmd, status.Thread)
			}

			return writeStatusesOutput(cmd, app, []application.Status{status}, true)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the thread record as JSON")

	return cmd
}

func newThreadTouchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <id>",
		Short: "Record a human interaction on a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.threads.Touch(cmd.Context(), domain.ThreadID(args[0]))
			return err
		},
	}
}

func newThreadBumpCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Manage a thread's blockers",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <text>",
			Short: "Record a blocker on the current task",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := app.threads.AddBump(cmd.Context(), domain.ThreadID(args[0]), args[1])
				return err
			},
		},
		&cobra.Command{
			Use:   "remove <id> <index>",
			Short: "Clear the blocker at index (reporting order, zero-based)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("parse bump index %q: %w", args[1], err)
				}

				_, err = app.threads.RemoveBump(cmd.Context(), domain.ThreadID(args[0]), index)
				return err
			},
		},
	)

	return cmd
}

func newThreadDoneCmd(app *app) *cobra.Command {
	var test string

	cmd := &cobra.Command{
		Use:   "done <id> <task>",
		Short: "Record completed work on a thread",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.threads.MarkDone(cmd.Context(), domain.ThreadID(args[0]), args[1], test)
			return err
		},
	}

	cmd.Flags().StringVar(&test, "test", "", "how you know it's done")

	return cmd
}

func newThreadStatusCmd(app *app, use, short string, status domain.ThreadStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.threads.SetStatus(cmd.Context(), domain.ThreadID(args[0]), status)
			return err
		},
	}
}
