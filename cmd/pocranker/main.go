package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/PoCRanker/internal/config"
	"github.com/TobiSchelling/PoCRanker/internal/database"
	"github.com/TobiSchelling/PoCRanker/internal/idea"
	"github.com/TobiSchelling/PoCRanker/internal/importer"
	"github.com/TobiSchelling/PoCRanker/internal/pipeline"
	"github.com/TobiSchelling/PoCRanker/internal/server"
)

var version = "dev"

var (
	verbose    bool
	jsonOutput bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "pocranker",
	Short:   "Rank PoC ideas and plan the winners",
	Long:    "PoCRanker scores candidate AI proof-of-concept ideas, picks the top candidates and drafts a 30/60/90-day plan and an experiment card for each.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		loaded, path, err := config.Resolve(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		if cfg.Debug() {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
		if verbose {
			if path == "" {
				log.Printf("No config file found, using built-in defaults")
			} else {
				log.Printf("Using config %s", path)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables and Markdown")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(practicesCmd)
	rootCmd.AddCommand(playbookCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ideasCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pocranker", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/pocranker/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to tune ranking weights, planning constraints and the playbook path.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backlog and decision status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}
		if jsonOutput {
			return printJSON(stats)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Backlog:")
		fmt.Printf("  Ideas: %d\n", stats.Ideas)
		fmt.Println("\nDecisions:")
		fmt.Printf("  GO: %d\n", stats.Go)
		fmt.Printf("  PIVOT: %d\n", stats.Pivot)
		fmt.Printf("  NO-GO: %d\n", stats.NoGo)
		fmt.Printf("  Undecided: %d\n", stats.Undecided)
		fmt.Println("\nRanking:")
		fmt.Printf("  Normalization: %s\n", cfg.Ranking.Normalization)
		w := cfg.Ranking.Weights
		fmt.Printf("  Weights: impact %g, effort %g, risk %g, data readiness %g\n", w.Impact, w.Effort, w.Risk, w.DataReadiness)
		playbookPath := cfg.Playbook.Path
		if playbookPath == "" {
			playbookPath = "built-in"
		}
		fmt.Printf("  Playbook: %s\n", playbookPath)
		return nil
	},
}

// --- run command ---

var (
	dryRun     bool
	outputPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run the full pipeline: load -> validate -> rank -> plan -> cards -> report",
	Long:  "Ranks the ideas in file, or the stored backlog when no file is given, and composes a Markdown report with a plan and an experiment card for every top pick.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ideas []idea.Idea
		var db *database.DB
		if len(args) == 1 {
			loaded, err := importer.ReadFile(args[0])
			if err != nil {
				return err
			}
			ideas = loaded
			idea.AssignMissingIDs(ideas, time.Now())
		} else {
			var err error
			if db, err = openDB(); err != nil {
				return err
			}
			defer db.Close()
		}

		pipe := pipeline.New(cfg, db)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun(ideas)
		} else {
			result = pipe.Run(ideas)
		}

		for i, step := range result.Steps {
			fmt.Fprintf(os.Stderr, "\nStep %d/6: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Fprintf(os.Stderr, "  Error: %v\n", step.Err)
			} else {
				fmt.Fprintf(os.Stderr, "  %s\n", step.Summary)
			}
		}
		if err := result.Err(); err != nil {
			return err
		}
		if dryRun {
			return nil
		}

		if jsonOutput {
			return printJSON(map[string]any{
				"ranking": result.Ranking,
				"plans":   result.Plans,
				"cards":   result.Cards,
			})
		}
		if outputPath == "" {
			fmt.Println()
			fmt.Print(result.Report)
			return nil
		}
		if err := os.WriteFile(outputPath, []byte(result.Report), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\nPipeline complete! Report written to %s\n", outputPath)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the Markdown report to a file instead of stdout")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		fmt.Printf("Starting server at http://localhost:%d\n", cfg.Server.Port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(cfg, db)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to run server on (overrides server.port)")
}

func openDB() (*database.DB, error) {
	if err := os.MkdirAll(cfg.GetDataDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return database.Open(cfg.DBPath())
}
