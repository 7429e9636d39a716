package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/helm-threads-cli/internal/adapters/render/status"
	"github.com/bnema/helm-threads-cli/internal/application"
	"github.com/bnema/helm-threads-cli/internal/domain"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON, withPrompts bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Render the thread health dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := app.threads.GetStatusAll(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeThreadsJSON(cmd, statuses)
			}

			return writeStatusesOutput(cmd, app, statuses, withPrompts)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit thread records as JSON")
	cmd.Flags().BoolVar(&withPrompts, "prompts", false, "include gentle nudges per thread")

	return cmd
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.Status, withPrompts bool) error {
	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
		Now:         app.now(),
		ShowPrompts: withPrompts,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeThreadJSON(cmd *cobra.Command, thread domain.Thread) error {
	data, err := domain.EncodeThread(thread)
	if err != nil {
		return fmt.Errorf("encode thread record: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func writeThreadsJSON(cmd *cobra.Command, statuses []application.Status) error {
	records := make([]json.RawMessage, 0, len(statuses))
	for _, status := range statuses {
		data, err := domain.EncodeThread(status.Thread)
		if err != nil {
			return fmt.Errorf("encode thread record: %w", err)
		}
		records = append(records, data)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
