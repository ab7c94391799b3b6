package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tagdeck-go/internal/config"
	"tagdeck-go/internal/ledger"
	"tagdeck-go/internal/logging"
	"tagdeck-go/internal/search"
	"tagdeck-go/internal/selection"
	"tagdeck-go/internal/tags"
	"tagdeck-go/internal/tui"
)

// flags shared by every command.
type rootFlags struct {
	configPath string
	dataSource string
	mode       string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:          "tagdeck",
		Short:        "Browse a rated tag dataset or draw cards from it",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), f)
		},
	}

	rootCmd.PersistentFlags().StringVar(&f.configPath, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&f.dataSource, "data", "", "tag CSV file path or http(s) URL")
	rootCmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
	rootCmd.Flags().StringVar(&f.mode, "mode", "", "start mode: random or search")

	rootCmd.AddCommand(searchCmd(f))
	rootCmd.AddCommand(groupsCmd(f))
	return rootCmd
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(f *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.dataSource != "" {
		cfg.Data.Source = f.dataSource
	}
	if f.mode != "" {
		cfg.UI.StartMode = f.mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runTUI(ctx context.Context, f *rootFlags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging, f.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	rounds, err := ledger.Open(ctx, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize round ledger: %w", err)
	}
	defer rounds.Close()

	mode, err := tui.ParseMode(cfg.UI.StartMode)
	if err != nil {
		return err
	}

	logger.Info("Starting tagdeck", zap.String("source", cfg.Data.Source), zap.String("mode", cfg.UI.StartMode))
	model := tui.New(tui.Options{
		Source:         cfg.Data.Source,
		Loader:         tags.NewLoader(&http.Client{}, logger),
		Rounds:         rounds,
		Logger:         logger,
		StartMode:      mode,
		ResultLimit:    cfg.UI.ResultLimit,
		RandomExcluded: cfg.Random.ExcludedGroups,
		SearchExcluded: cfg.Search.ExcludedGroups,
		FetchTimeout:   cfg.GetFetchTimeout(),
		RevealInterval: cfg.GetRevealInterval(),
		ScoreAnimation: cfg.GetScoreAnimation(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// loadRecords reads the dataset for the plain-text subcommands.
func loadRecords(ctx context.Context, cfg *config.Config) ([]tags.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.GetFetchTimeout())
	defer cancel()
	return tags.NewLoader(&http.Client{}, zap.NewNop()).Load(ctx, cfg.Data.Source)
}

func searchCmd(f *rootFlags) *cobra.Command {
	var groups []string
	var limit int

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Print tags matching a term",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			records, err := loadRecords(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.UI.ResultLimit
			}

			term := ""
			if len(args) == 1 {
				term = args[0]
			}

			all := tags.Groups(records)
			set := selection.New(all, cfg.Search.ExcludedGroups...)
			if len(groups) > 0 {
				set.DeselectAll()
				for _, g := range groups {
					set.Toggle(g)
				}
			}

			printSearch(cmd.OutOrStdout(), search.Filter(records, term, set, limit), len(records))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "restrict to these tag groups (repeatable)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum rows to print (default from config)")
	return cmd
}

func printSearch(w io.Writer, res search.Result, total int) {
	if res.Total == 0 {
		fmt.Fprintln(w, "No tags match your filter.")
		return
	}

	rows := make([][]string, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = []string{r.Translation, r.Tag, r.GroupList(), strconv.Itoa(r.Rating), humanize.Comma(int64(r.Count))}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("trans", "tag", "tagGroup", "Rating", "Count").
		Rows(rows...)
	fmt.Fprintln(w, t.String())

	if res.Truncated {
		fmt.Fprintf(w, "Showing first %d results...\n", len(res.Rows))
	} else {
		fmt.Fprintf(w, "Showing %d of %d tags\n", res.Total, total)
	}
}

func groupsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Print tag groups with their record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			records, err := loadRecords(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			printGroups(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func printGroups(w io.Writer, records []tags.Record) {
	counts := tags.GroupCounts(records)
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	// Largest groups first, ties by label.
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	if len(labels) == 0 {
		fmt.Fprintln(w, "No groups in the dataset.")
		return
	}
	for _, label := range labels {
		fmt.Fprintf(w, "%-20s %s\n", label, humanize.Comma(int64(counts[label])))
	}
}
