package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"omr-bot/config"
	"omr-bot/internal/container"
	"omr-bot/internal/domain/entity"
	"omr-bot/internal/infrastructure/inference"
	"omr-bot/internal/infrastructure/storage"
	"omr-bot/internal/logger"
)

var (
	workers int
	pretty  bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "sheetctl",
	Short:         "Decode answer sheets from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <image>...",
	Short: "Decode sheet images and print one JSON line per file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the inference service answers",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	decodeCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel decodes (default DECODE_WORKERS)")
	decodeCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline decisions to stderr")

	rootCmd.AddCommand(decodeCmd, healthCmd)
}

// fileResult строка вывода decode
type fileResult struct {
	Path   string               `json:"path"`
	Result *entity.DecodeResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.DecodeWorkers = workers
	}

	lg := logger.Discard()
	if verbose {
		lg = logger.New(cfg.LogPrefix, os.Stderr, os.Stderr)
	}

	detectors, closer, err := container.NewDetectors(cfg, lg)
	if err != nil {
		return err
	}
	defer closer.Close()

	c := container.New(storage.NewMemoryUserRepository(), detectors, container.Options{
		Thresholds:    cfg.Thresholds,
		DecodeWorkers: cfg.DecodeWorkers,
		TempDir:       cfg.TempDir,
	}, lg)

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty {
		enc.SetIndent("", "  ")
	}

	failed := 0
	for _, item := range c.BatchService.DecodeFiles(cmd.Context(), args) {
		out := fileResult{Path: item.Path, Result: item.Result}
		if item.Err != nil {
			out.Error = item.Err.Error()
			failed++
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sheets failed", failed, len(args))
	}
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Backend != config.BackendHTTP {
		return fmt.Errorf("health check needs DETECTOR_BACKEND=%s, got %s", config.BackendHTTP, cfg.Backend)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	if err := inference.NewClient(cfg.InferenceURL, cfg.InferenceTimeout).CheckHealth(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inference service at %s is up\n", cfg.InferenceURL)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
