package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as JSON",
		Long:  "Export all entries as a JSON array in insertion order. Filter by source with -s.",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	cmd.Flags().StringP("source", "s", "", "Filter by source")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	entries, err := s.Export(cmd.Context(), source)
	if err != nil {
		return err
	}
	return printJSON(cmd, entries)
}
