package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/picstock/picstock/internal/config"
	"github.com/picstock/picstock/internal/differ"
	"github.com/picstock/picstock/internal/errs"
	"github.com/picstock/picstock/internal/logger"
	"github.com/picstock/picstock/internal/reporter"
	"github.com/picstock/picstock/internal/scanner"
	"github.com/picstock/picstock/internal/store"
	"github.com/picstock/picstock/internal/ui"
	"github.com/picstock/picstock/pkg/utils"
)

var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	live       bool
	workers    int
	outputFmt  string
	outputFile string
	initConfig bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errs.UserMessageFor(err))
		// Cobra reports an unrecognized verb as a plain error; the
		// usage text is what the caller needs then.
		if strings.HasPrefix(err.Error(), "unknown command") {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "picstock",
	Short: "Photo collection inventory and comparison",
	Long: `Picstock captures what photo files live where. It analyses directory
trees into named sources, keeps the captures on disk as plain CSV, and
compares sources to find files that are missing or changed between them.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var sourceCmd = &cobra.Command{
	Use:   "source <name> <directory>...",
	Short: "Analyse directories into a named source",
	Long: `Analyses the given directories and captures every recognized photo file
into a named source. A source that already exists is replaced entirely.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		roots := args[1:]

		if err := store.ValidateSourceName(name); err != nil {
			return err
		}

		// Load config
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}
		if verbose {
			cfg.Verbose = true
		}

		log, err := logger.New(cfg.Verbose, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		st := store.New(cfg.DataDir, log)

		// Create scanner
		scnr, err := scanner.New(cfg, log)
		if err != nil {
			return err
		}

		var progress *ui.LiveProgress
		if live {
			progress = ui.NewLiveProgress()
			scnr.SetProgressCallback(progress.Update)
			progress.Start()
		}

		// A re-analysis replaces the previous capture entirely.
		if err := st.DestroySource(name); err != nil {
			return err
		}

		inv, err := scnr.Snapshot(name, roots)
		if progress != nil {
			progress.Finish()
		}
		if err != nil {
			return err
		}

		if err := st.SaveInventory(inv); err != nil {
			return err
		}

		manifest := &store.Manifest{
			Source:    name,
			Roots:     roots,
			Files:     inv.Count(),
			TotalSize: inv.TotalSize(),
		}
		if err := st.SaveManifest(manifest); err != nil {
			return err
		}

		// Print report
		rptr := reporter.New(os.Stdout, reporter.FormatSummary)
		return rptr.ReportInventory(inv)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <source-a> <source-b>",
	Short: "Compare two analysed sources",
	Long: `Compares two analysed sources category by category and reports files
that exist on only one side or differ in size. The comparison is also
saved as CSV next to the sources.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if verbose {
			cfg.Verbose = true
		}

		log, err := logger.New(cfg.Verbose, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		st := store.New(cfg.DataDir, log)

		invA, err := st.LoadInventory(args[0])
		if err != nil {
			return err
		}
		invB, err := st.LoadInventory(args[1])
		if err != nil {
			return err
		}

		set := differ.Diff(invA, invB)

		savedPath, err := st.SaveComparison(set)
		if err != nil {
			return err
		}

		rptr := reporter.New(os.Stdout, reporter.FormatSummary)
		if err := rptr.ReportComparison(set); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		fmt.Printf("\nComparison saved to: %s\n", savedPath)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List analysed sources",
	Long:  `Lists every analysed source with its file count, size and capture time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		st := store.New(cfg.DataDir, logger.Discard())

		names, err := st.ListSources()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Println("No sources analysed yet.")
			fmt.Println("Run 'picstock source <name> <directory>...' first.")
			return nil
		}

		for _, name := range names {
			line := fmt.Sprintf("%-20s", name)

			inv, err := st.LoadInventory(name)
			if err != nil {
				fmt.Println(line + "  (unreadable)")
				continue
			}

			line += fmt.Sprintf("  %6d files  %10s", inv.Count(), utils.FormatBytes(inv.TotalSize()))
			if manifest, err := st.LoadManifest(name); err == nil {
				line += fmt.Sprintf("  captured %s", manifest.CapturedAt.Format("2006-01-02 15:04"))
			}
			fmt.Println(line)

			for _, category := range inv.Categories() {
				records := inv.Category(category)
				var size int64
				for _, rec := range records {
					size += rec.Size
				}
				fmt.Printf("  %-18s  %6d files  %10s\n",
					category, len(records), utils.FormatBytes(size))
			}
		}

		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <name>",
	Short: "Generate a report for an analysed source",
	Long:  `Generates a report of an analysed source in the chosen output format.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Parse format
		format, err := reporter.ParseFormat(outputFmt)
		if err != nil {
			return err
		}

		st := store.New(cfg.DataDir, logger.Discard())

		inv, err := st.LoadInventory(args[0])
		if err != nil {
			return err
		}

		// Generate report
		if outputFile != "" {
			if err := reporter.SaveInventoryToFile(inv, outputFile, format); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		rptr := reporter.New(os.Stdout, format)
		return rptr.ReportInventory(inv)
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse [name]",
	Short: "Browse analysed sources interactively",
	Long: `Opens an interactive, read-only browser over the analysed sources.
With a source name it opens directly on that source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		initialSource := ""
		if len(args) == 1 {
			if err := store.ValidateSourceName(args[0]); err != nil {
				return err
			}
			initialSource = args[0]
		}

		st := store.New(cfg.DataDir, logger.Discard())
		return ui.RunBrowse(st, initialSource)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the configuration file location and the effective settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initConfig {
			created, err := config.EnsureConfigExists()
			if err != nil {
				return err
			}
			fmt.Printf("Config file written to: %s\n", created)
			return nil
		}

		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
			fmt.Println("Run 'picstock config --init' to create it.")
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Printf("\nData directory: %s\n", cfg.DataDir)
		fmt.Printf("Base directory: %s\n", cfg.BaseDir)
		fmt.Printf("Workers:        %d\n", cfg.Workers)
		fmt.Println("Categories:")
		for _, category := range sortedKeys(cfg.Categories) {
			fmt.Printf("  %-12s %v\n", category, cfg.Categories[category])
		}

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// Source command flags
	sourceCmd.Flags().BoolVar(&live, "live", false, "show live progress while analysing")
	sourceCmd.Flags().IntVar(&workers, "workers", 0, "number of stat workers (defaults from config)")

	// Report command flags
	reportCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml)")
	reportCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	// Config command flags
	configCmd.Flags().BoolVar(&initConfig, "init", false, "write the default config file")

	// Add commands
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
