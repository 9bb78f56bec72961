package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lynxdash/cmd/lynxdash/ui"
	"lynxdash/internal/config"
	"lynxdash/internal/deeplynx"
	"lynxdash/internal/logging"
	"lynxdash/internal/store"
)

var (
	// Global flags
	cfgPath string
	baseURL string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lynxdash",
	Short: "lynxdash - terminal dashboard for a Deep Lynx container",
	Long: `lynxdash is an interactive terminal dashboard for a Deep Lynx
ontology service.

It renders the container's ontology as a live force-directed graph you can
click and drag, alongside tables of the configured data sources and type
mappings.

Run without arguments to start the dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if baseURL != "" {
			cfg.API.BaseURL = baseURL
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(logging.Options{
			Level:   cfg.Logging.Level,
			File:    cfg.Logging.File,
			Verbose: verbose,
			// Only the bare command enters the TUI; subcommands keep
			// logging to stderr.
			Interactive: cmd.CalledAs() == "lynxdash",
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

// fetchCmd fetches all three resources once and prints a summary, useful
// for checking connectivity without entering the dashboard.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the ontology, data sources and type mappings once and print counts",
	RunE:  runFetch,
}

func runDashboard() error {
	client := deeplynx.NewClientWithTimeout(cfg.API.BaseURL, cfg.RequestTimeout(), logger)
	st := store.New(client, logger)

	logger.Info("starting dashboard", zap.String("base_url", client.BaseURL()))

	p := tea.NewProgram(
		ui.NewAppModel(st, ui.ThemeFor(cfg.UI.Theme), logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := deeplynx.NewClientWithTimeout(cfg.API.BaseURL, cfg.RequestTimeout(), logger)
	st := store.New(client, logger)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return st.FetchGraph(ctx) })
	g.Go(func() error { return st.FetchDataSources(ctx) })
	g.Go(func() error { return st.FetchTypeMappings(ctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch from %s failed: %s", client.BaseURL(), st.Err())
	}

	snapshot := st.Snapshot()
	fmt.Printf("endpoint:       %s\n", client.BaseURL())
	fmt.Printf("classes:        %d\n", len(snapshot.Nodes))
	fmt.Printf("relationships:  %d\n", len(snapshot.Relationships))
	fmt.Printf("data sources:   %d\n", len(st.DataSources()))
	fmt.Printf("type mappings:  %d\n", len(st.TypeMappings()))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a lynxdash config file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Deep Lynx API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
