package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/apiki-hq/apiki/internal/config"
	"github.com/apiki-hq/apiki/internal/history"
)

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent requests from the local history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := history.NewStore(cfg.HistoryType, cfg.HistoryPath, history.Options{
				RecordTTL:       cfg.HistoryTTL,
				CleanupInterval: cfg.HistoryCleanupInterval,
			})
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history recorded.")
				return nil
			}
			for _, rec := range records {
				line := fmt.Sprintf("%s  %-6s %s  %d", rec.At.Format(time.RFC3339), rec.Method, rec.URL, rec.StatusCode)
				if rec.Error != "" {
					line += "  " + rec.Error
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	return cmd
}
