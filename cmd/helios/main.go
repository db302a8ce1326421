package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helios-model/helios/internal/document"
	"github.com/helios-model/helios/internal/script"
	"github.com/helios-model/helios/pkg/config"
	"github.com/helios-model/helios/pkg/history"
	"github.com/helios-model/helios/pkg/logger"
	"github.com/helios-model/helios/pkg/scenario"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	var configFile, logLevel string

	root := &cobra.Command{
		Use:   "helios",
		Short: "Helios - editing engine for energy-systems scenario data",
		Long: `Helios edits energy-systems scenario data (message_ix parameters) through
a reversible command system. The CLI inspects scenario snapshots and replays
JSON edit scripts against them, with full undo/redo semantics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{
				Level:    logLevel,
				Encoding: "console",
			})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to engine configuration YAML file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Helios v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	inspectCmd := &cobra.Command{
		Use:   "inspect <scenario.json>",
		Short: "Summarize the parameters of a scenario snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(args[0])
		},
	}
	root.AddCommand(inspectCmd)

	var scriptFile, outFile string
	replayCmd := &cobra.Command{
		Use:   "replay <scenario.json>",
		Short: "Apply a JSON edit script to a scenario snapshot",
		Long: `Replay loads a scenario snapshot, applies the operations of an edit script
through the undo/redo command engine, and writes the resulting snapshot.

Example:
  helios replay baseline.json --script edits.json -o edited.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return replay(args[0], scriptFile, outFile, configFile)
		},
	}
	replayCmd.Flags().StringVar(&scriptFile, "script", "", "Path to JSON edit script (required)")
	replayCmd.Flags().StringVarP(&outFile, "output", "o", "", "Path for the resulting snapshot (default: stdout)")
	_ = replayCmd.MarkFlagRequired("script")
	root.AddCommand(replayCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadScenario reads and decodes a scenario snapshot file.
func loadScenario(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	sc, err := scenario.UnmarshalSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return sc, nil
}

// loadConfig reads the engine configuration, falling back to defaults when
// no file is given.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.New()
	if path != "" {
		if err := config.Load(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func inspect(scenarioFile string) error {
	sc, err := loadScenario(scenarioFile)
	if err != nil {
		return err
	}

	fmt.Printf("Scenario: %s\n", sc.Name())
	opts := sc.Options()
	fmt.Printf("Years: %d-%d\n", opts.MinYear, opts.MaxYear)

	if names := sc.SetNames(); len(names) > 0 {
		fmt.Println("\nSets:")
		for _, name := range names {
			values, _ := sc.Set(name)
			fmt.Printf("  %-24s %d values\n", name, len(values))
		}
	}

	fmt.Println("\nParameters:")
	for _, name := range sc.ParameterNames() {
		table, meta, err := sc.Parameter(name)
		if err != nil {
			return err
		}
		unit := meta.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Printf("  %-24s %4d rows  %2d cols  unit=%s\n",
			name, table.RowCount(), table.ColumnCount(), unit)
	}
	return nil
}

func replay(scenarioFile, scriptFile, outFile, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	sc, err := loadScenario(scenarioFile)
	if err != nil {
		return err
	}

	scriptData, err := os.ReadFile(scriptFile) //nolint:gosec // G304: path comes from the CLI user
	if err != nil {
		return fmt.Errorf("failed to read script file %s: %w", scriptFile, err)
	}
	edits, err := script.Parse(scriptData)
	if err != nil {
		return err
	}

	doc := document.New(sc, cfg)
	cancel := doc.Subscribe(func(state history.State) {
		logger.Debug("history state changed",
			zap.Bool("can_undo", state.CanUndo),
			zap.Bool("can_redo", state.CanRedo),
			zap.Int("undo_depth", state.UndoDepth))
	})
	defer cancel()
	defer doc.Close()

	if err := edits.Apply(doc); err != nil {
		return err
	}

	logger.Info("script applied",
		zap.Int("operations", len(edits.Operations)),
		zap.Strings("modified", sc.Modified()))

	out, err := sc.MarshalSnapshot()
	if err != nil {
		return err
	}

	if outFile == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(outFile, out, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write output %s: %w", outFile, err)
	}
	return nil
}
