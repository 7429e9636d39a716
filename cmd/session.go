package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/helm-threads-cli/internal/domain"
	"github.com/bnema/helm-threads-cli/internal/logging"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Compose continuity prompts for human-agent sessions",
		Long:  "Session records live with whatever collaborator persists them; these commands accept a record, replay it through the in-process session memory, and emit the continuity prompt plus the updated record.",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionShowCmd(app),
		newSessionPromptCmd(app),
		newSessionResumeCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *app) *cobra.Command {
	var human, agent, task string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Create a session record for first contact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Create(human, agent, task)
			if err != nil {
				return err
			}

			return writeSessionJSON(cmd, session)
		},
	}

	cmd.Flags().StringVar(&human, "human", "", "human name")
	cmd.Flags().StringVar(&agent, "agent", "", "agent name")
	cmd.Flags().StringVar(&task, "task", "", "initial task")
	_ = cmd.MarkFlagRequired("human")
	_ = cmd.MarkFlagRequired("agent")

	return cmd
}

func newSessionShowCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Validate a session record and echo its normalized form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := readSessionRecord(cmd, file)
			if err != nil {
				return err
			}

			return writeSessionJSON(cmd, session)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "session record JSON file (- for stdin)")

	return cmd
}

func newSessionPromptCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the continuity prompt for a session record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := readSessionRecord(cmd, file)
			if err != nil {
				return err
			}

			prompt, err := app.sessions.ContinuityPrompt(session)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "session record JSON file (- for stdin)")

	return cmd
}

func newSessionResumeCmd(app *app) *cobra.Command {
	var (
		file     string
		task     string
		messages int
		bumps    []string
		todos    []string
		topics   []string
		doneTask string
		evidence string
	)

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Replay a session record, apply updates, and emit the new record",
		Long:  "Prints the continuity prompt computed from the record's last session stamp to stderr, then writes the updated record to stdout for the collaborator to persist.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if messages < 0 {
				return fmt.Errorf("messages must be non-negative, got %d", messages)
			}

			session, err := readSessionRecord(cmd, file)
			if err != nil {
				return err
			}

			prompt, err := app.sessions.ContinuityPrompt(session)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), prompt)

			session.SessionCount++
			session.TotalMessages += messages
			if task != "" {
				session.WorkingOn.Task = task
			}
			session.WorkingOn.Bumps = append(session.WorkingOn.Bumps, bumps...)
			session.Todo = append(session.Todo, todos...)
			session.Topics = append(session.Topics, topics...)
			if doneTask != "" {
				session.Done = append(session.Done, domain.CompletedItem{
					Task:        doneTask,
					Evidence:    evidence,
					CompletedAt: app.now(),
				})
			}

			session = app.sessions.Update(session)
			logging.Logger.Debug("session updated",
				"key", session.Key(),
				"sessionCount", session.SessionCount,
				"totalMessages", session.TotalMessages,
			)

			return writeSessionJSON(cmd, session)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "session record JSON file (- for stdin)")
	cmd.Flags().StringVar(&task, "task", "", "new current focus")
	cmd.Flags().IntVar(&messages, "messages", 0, "messages exchanged this session")
	cmd.Flags().StringArrayVar(&bumps, "bump", nil, "blocker hit this session (repeatable)")
	cmd.Flags().StringArrayVar(&todos, "todo", nil, "near-term next action (repeatable)")
	cmd.Flags().StringArrayVar(&topics, "topic", nil, "recurring theme (repeatable)")
	cmd.Flags().StringVar(&doneTask, "done", "", "task completed this session")
	cmd.Flags().StringVar(&evidence, "evidence", "", "how completion was verified")

	return cmd
}

func readSessionRecord(cmd *cobra.Command, file string) (domain.HumanAgentSession, error) {
	var (
		data []byte
		err  error
	)

	if file == "-" || file == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return domain.HumanAgentSession{}, fmt.Errorf("read session record: %w", err)
	}

	return domain.DecodeSession(data)
}

func writeSessionJSON(cmd *cobra.Command, session domain.HumanAgentSession) error {
	data, err := domain.EncodeSession(session)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
