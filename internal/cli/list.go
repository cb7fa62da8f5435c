package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent entries, newest first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().StringP("source", "s", "", "Filter by source")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	entries, err := s.List(cmd.Context(), store.ListParams{
		Source: source,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd, entries)
	}
	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", e.ID, e.Timestamp.Local().Format(time.DateTime), e.Source, e.Content)
	}
	return nil
}
