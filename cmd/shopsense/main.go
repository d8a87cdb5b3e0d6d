package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopsense/cmd/shopsense/browse"
	"shopsense/cmd/shopsense/ui"
	"shopsense/internal/api"
	"shopsense/internal/catalog"
	"shopsense/internal/config"
	"shopsense/internal/logging"
	"shopsense/internal/sentiment"
	"shopsense/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	// Global flags
	verbose    bool
	apiURL     string
	configPath string

	// Loaded in PersistentPreRunE
	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopsense",
	Short: "ShopSense - sentiment-aware storefront browser",
	Long: `ShopSense is a terminal client for the storefront sentiment service.

It shows the product catalog with per-product sentiment analysis, review
heat maps, marketing claim audits, and similar-product recommendations.

Run without arguments to start the interactive browser.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			path, err = config.File()
			if err != nil {
				return err
			}
		}
		configPath = path
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}

		// The interactive UI owns stdout, so its logs go to a file.
		if cmd.Name() == "shopsense" {
			logger, err = logging.File(cfg.Logging, verbose)
		} else {
			logger, err = logging.Console(cfg.Logging, verbose)
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser()
	},
}

// productsCmd prints the catalog as a table without entering the TUI
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog with sentiment summaries",
	RunE:  runProducts,
}

// analyzeCmd scores a free-form text
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Run ad-hoc sentiment analysis on a text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shopsense version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("shopsense", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "storefront API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func runBrowser() error {
	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)
	model := browse.New(cfg, client, store.New(), logger)

	// Live-reload the config file while the UI runs. A missing file is
	// fine; the watcher just doesn't start.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if updates, err := config.Watch(ctx, configPath, logger); err == nil {
		model = model.WithConfigUpdates(updates)
	} else {
		logger.Warn("config watch disabled", zap.Error(err))
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

func runProducts(cmd *cobra.Command, args []string) error {
	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)
	products, err := client.Products(context.Background())
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("No products available.")
		return nil
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
	table := ui.NewSimpleTable("Products", []string{"Name", "Category", "Price", "Sentiment", "Reviews"})
	for _, p := range products {
		c := sentiment.Classify(p.SentimentScore)
		table.AddRow(
			p.Name,
			p.Category,
			fmt.Sprintf("$%.2f", p.Price),
			c.Label,
			fmt.Sprintf("%d", p.Counts.Total()),
		)
	}
	fmt.Print(table.View(styles))
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := args[0]
	if err := catalog.ValidateAnalysisText(text); err != nil {
		return err
	}

	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithLogger(logger),
	)
	result, err := client.Analyze(context.Background(), text)
	if err != nil {
		return err
	}

	c := sentiment.Classify(result.SentimentScore)
	fmt.Printf("score: %.2f (%s)\n", result.SentimentScore, c.Label)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
