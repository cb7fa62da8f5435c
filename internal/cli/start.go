package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/capture"
)

func init() {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the background capture service",
		Long:  "Capture activity every interval until interrupted with Ctrl+C or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE:  runStart,
	}

	cmd.Flags().IntP("interval", "i", 5, "Capture interval in seconds (default: capture.interval from config)")

	RootCmd.AddCommand(cmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	interval := cfg.Capture.Interval
	if cmd.Flags().Changed("interval") {
		interval, _ = cmd.Flags().GetInt("interval")
	}
	if interval <= 0 {
		return fmt.Errorf("%w: %d", capture.ErrInvalidInterval, interval)
	}

	s, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[*] ChronoLog Capture Service started (Interval: %ds)...\n", interval)
	fmt.Fprintln(out, "[*] Press Ctrl+C to stop.")

	loop := &capture.Loop{
		Store:    s,
		Source:   capture.MockSource{},
		Interval: time.Duration(interval) * time.Second,
		Logger:   logger,
	}
	if err := loop.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n[*] Stopping capture service.")
	return nil
}
