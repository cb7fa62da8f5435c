package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errQuestionRequired = errors.New("Question required.")

func init() {
	cmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Ask a question to your knowledge base",
		RunE:  runQuery,
	}

	RootCmd.AddCommand(cmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	if question == "" {
		return errQuestionRequired
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	answer, err := s.Query(cmd.Context(), question)
	if err != nil {
		return err
	}

	if formatFlag == "json" {
		return printJSON(cmd, map[string]string{"question": question, "answer": answer})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[*] Querying: '%s'\n", question)
	fmt.Fprintf(out, "[*] Answer: %s\n", answer)
	return nil
}
