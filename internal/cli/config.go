package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/config"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := "chronolog.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[*] Wrote %s\n", path)
	return nil
}
