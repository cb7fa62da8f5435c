package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ingest [content]",
		Short: "Manually ingest a text entry",
		Long:  "Manually ingest a text entry. Content can be a positional arg or piped via stdin.",
		RunE:  runIngest,
	}

	cmd.Flags().StringP("source", "s", "", "Source label (default: capture.source from config, else manual)")

	RootCmd.AddCommand(cmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = cfg.Capture.Source
	}

	// Get content: positional arg first, then check stdin
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else if f, ok := cmd.InOrStdin().(*os.File); !ok || isPiped(f) {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		content = strings.TrimRight(string(b), "\n")
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	entry, err := s.Ingest(cmd.Context(), source, content)
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd, entry)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "[*] Data ingested successfully.")
	return nil
}

func isPiped(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
