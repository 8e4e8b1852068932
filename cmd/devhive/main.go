// devhive is the terminal client for the DevHive unified knowledge hub.
// Run without arguments to start the interactive interface; the stats,
// search, ask and health subcommands run single operations and print the
// result to stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vxrdhxn/dev-hive-2nd-version/cmd/devhive/config"
	"github.com/vxrdhxn/dev-hive-2nd-version/cmd/devhive/ui"
	"github.com/vxrdhxn/dev-hive-2nd-version/internal/api"
	"github.com/vxrdhxn/dev-hive-2nd-version/internal/logging"
)

var (
	// Global flags
	apiURL    string
	themeName string
	verbose   bool

	logger *zap.Logger
)

// newClient builds the transport client from config and flags. Flags win
// over environment and file settings.
func newClient() (*api.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if verbose {
		cfg.Verbose = true
	}
	client := api.NewClient(cfg.APIURL, api.WithLogger(logger))
	return client, cfg, nil
}

var rootCmd = &cobra.Command{
	Use:   "devhive",
	Short: "DevHive - Unified Knowledge Hub client",
	Long: `devhive is a terminal client for the DevHive knowledge hub.

It presents four views over the DevHive backend: a dashboard of indexed
content, semantic search, question answering, and integration status.
Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print knowledge base stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		snap, err := client.FetchStats(context.Background())
		if err != nil {
			return userFacing(err)
		}
		fmt.Printf("Total Vectors: %d\n", snap.TotalVectors)
		fmt.Printf("Total Documents: %d\n", snap.TotalDocuments)
		fmt.Printf("GitHub Documents: %d\n", snap.Sources.GitHub)
		fmt.Printf("Notion Documents: %d\n", snap.Sources.Notion)
		fmt.Printf("Slack Documents: %d\n", snap.Sources.Slack)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("query must not be empty")
		}
		client, _, err := newClient()
		if err != nil {
			return err
		}
		results, err := client.RunSearch(context.Background(), query)
		if err != nil {
			return userFacing(err)
		}
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for i, r := range results {
			if r.Score != nil {
				fmt.Printf("%d. [%s] %s (Score: %.4f)\n", i+1, r.Source, r.Text, *r.Score)
			} else {
				fmt.Printf("%d. [%s] %s\n", i+1, r.Source, r.Text)
			}
		}
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the knowledge base",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question must not be empty")
		}
		client, _, err := newClient()
		if err != nil {
			return err
		}
		answer, err := client.AskQuestion(context.Background(), question)
		if err != nil {
			return userFacing(err)
		}
		fmt.Println(answer.Answer)
		if len(answer.Sources) > 0 {
			fmt.Println("\nSources:")
			for i, src := range answer.Sources {
				fmt.Printf("%d. [%s] %s\n", i+1, src.Source, src.Text)
			}
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		hs, err := client.Health(context.Background())
		if err != nil {
			return userFacing(err)
		}
		if !hs.Healthy() {
			return fmt.Errorf("server reports status %q", hs.Status)
		}
		fmt.Println("Server is running.")
		return nil
	},
}

// userFacing strips transport errors down to their short message for CLI
// output; the full cause is already in the log.
func userFacing(err error) error {
	if terr, ok := err.(*api.TransportError); ok {
		return fmt.Errorf("%s", terr.UserMessage())
	}
	return err
}

func runInteractive() error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	app := ui.NewApp(client, styles)

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides DEVHIVE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme: light, dark or auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
