package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import entries from JSON",
		Long:  "Import entries from JSON on stdin, in the format produced by export. Imported entries get new ids and timestamps.",
		Args:  cobra.NoArgs,
		RunE:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	var entries []model.MemoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", imported)
	return nil
}
