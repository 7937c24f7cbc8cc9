package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/filter"
	"github.com/ataraskov/lsort/internal/runner"
	sortpkg "github.com/ataraskov/lsort/internal/sort"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information (injected at build time via ldflags)
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	// Comparison flags
	sortMethod     string
	indexSpecs     []string
	noCase         bool
	locale         string
	command        string
	stripPrefix    string
	pathOrder      string
	threeWayRandom bool

	// Ordering flags
	unique     bool
	decreasing bool
	head       int
	tail       int

	// Filtering flags
	matchPattern   string
	excludePattern string
	matchGlob      string
	excludeGlob    string

	// Execution flags
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "lsort [file...]",
	Short: "Sort lines with interchangeable comparison strategies",
	Long: `Sort text elements, one per line, read from files or standard input.
Supports ascii, dictionary, integer, real, version, path, random and
external command ordering, sub-element keys, case folding and unique output.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Comparison flags, shared with the search command
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&sortMethod, "sort-method", "m", "ascii", "Comparison: ascii, dictionary, integer, real, version, path, random or command")
	flags.StringArrayVarP(&indexSpecs, "index", "k", nil, `Compare a sub-element ("1", "end", "0 end-1"); repeat for secondary keys`)
	flags.BoolVarP(&noCase, "nocase", "f", false, "Compare case-insensitively")
	flags.StringVar(&locale, "locale", "", "BCP 47 locale for path collation (or LSORT_LOCALE env)")
	flags.StringVar(&command, "command", "", "Comparison command, invoked with both values appended (or LSORT_COMMAND env)")
	flags.StringVar(&stripPrefix, "strip-prefix", "", "Regex pattern to strip from values before version parsing")
	flags.StringVar(&pathOrder, "path-order", "shallow", "Path ordering: string, shallow or deepest")
	flags.BoolVar(&threeWayRandom, "three-way-random", false, "Let random ordering declare distinct values equal")

	// Filtering flags
	flags.StringVar(&matchPattern, "match", "", "Regex pattern for elements to include")
	flags.StringVar(&excludePattern, "exclude", "", "Regex pattern for elements to exclude")
	flags.StringVar(&matchGlob, "match-glob", "", "Glob pattern for elements to include (e.g., *.go)")
	flags.StringVar(&excludeGlob, "exclude-glob", "", "Glob pattern for elements to exclude")

	// Execution flags
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	flags.StringVar(&configFile, "config", "", "Config file with flag defaults (yaml, toml or json)")

	// Ordering flags
	rootCmd.Flags().BoolVarP(&unique, "unique", "u", false, "Keep only the last of each run of equal elements")
	rootCmd.Flags().BoolVarP(&decreasing, "decreasing", "r", false, "Sort in decreasing order")
	rootCmd.Flags().IntVar(&head, "head", 0, "Print only the first N sorted elements")
	rootCmd.Flags().IntVar(&tail, "tail", 0, "Print only the last N sorted elements")

	rootCmd.AddCommand(searchCmd)

	// Bind environment variables
	viper.SetEnvPrefix("lsort")
	_ = viper.BindEnv("locale")
	_ = viper.BindEnv("command")
	_ = viper.BindEnv("sort-method", "LSORT_SORT_METHOD")
}

func initConfig() {
	if configFile == "" {
		return
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read config: %v\n", err)
		os.Exit(1)
	}
}

// applyDefaults fills flags the user did not set from the environment or
// the config file
func applyDefaults(cmd *cobra.Command) {
	if locale == "" {
		locale = viper.GetString("locale")
	}
	if command == "" {
		command = viper.GetString("command")
	}
	if !cmd.Flags().Changed("sort-method") && viper.IsSet("sort-method") {
		sortMethod = viper.GetString("sort-method")
	}
	if !cmd.Flags().Changed("path-order") && viper.IsSet("path-order") {
		pathOrder = viper.GetString("path-order")
	}
	if !cmd.Flags().Changed("nocase") && viper.IsSet("nocase") {
		noCase = viper.GetBool("nocase")
	}
	if len(indexSpecs) == 0 && viper.IsSet("index") {
		indexSpecs = viper.GetStringSlice("index")
	}
}

func newLogger(w io.Writer) *slog.Logger {
	// stdout carries the sorted elements, so stay quiet unless asked
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// buildFilter combines --match, --exclude and their glob variants
func buildFilter(logger *slog.Logger) (filter.ElementFilter, error) {
	var filters []filter.ElementFilter

	if matchPattern != "" {
		f, err := filter.NewRegexFilter(matchPattern, false)
		if err != nil {
			return nil, fmt.Errorf("invalid match pattern: %w", err)
		}
		filters = append(filters, f)
		logger.Info("Match filter enabled", "pattern", matchPattern)
	}

	if excludePattern != "" {
		f, err := filter.NewRegexFilter(excludePattern, true)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern: %w", err)
		}
		filters = append(filters, f)
		logger.Info("Exclude filter enabled", "pattern", excludePattern)
	}

	if matchGlob != "" {
		f, err := filter.NewGlobFilter(matchGlob, false)
		if err != nil {
			return nil, fmt.Errorf("invalid match glob: %w", err)
		}
		filters = append(filters, f)
		logger.Info("Match glob filter enabled", "pattern", matchGlob)
	}

	if excludeGlob != "" {
		f, err := filter.NewGlobFilter(excludeGlob, true)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude glob: %w", err)
		}
		filters = append(filters, f)
		logger.Info("Exclude glob filter enabled", "pattern", excludeGlob)
	}

	if len(filters) == 0 {
		return nil, nil
	}
	return filter.NewCompositeFilter(filters...), nil
}

func run(cmd *cobra.Command, args []string) error {
	applyDefaults(cmd)
	logger := newLogger(cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if head < 0 || tail < 0 {
		return fmt.Errorf("--head and --tail must not be negative")
	}

	elementFilter, err := buildFilter(logger)
	if err != nil {
		return err
	}

	tracker := newTracker()
	cmp, err := buildComparer(ctx, comparerOptions{
		decreasing: decreasing,
		unique:     unique,
		tracker:    tracker,
	})
	if err != nil {
		return err
	}
	logger.Info("Using sort method", "method", sortMethod, "keys", max(len(indexSpecs), 1))

	r := runner.NewRunner(runner.Config{
		Fs:     afero.NewOsFs(),
		Inputs: args,
		Stdin:  cmd.InOrStdin(),
		Filter: elementFilter,
		Sorter: sortpkg.NewSorter(sortpkg.Config{
			Comparer: cmp,
			Unique:   unique,
			Tracker:  tracker,
			Logger:   logger,
		}),
		Tracker: tracker,
		Head:    head,
		Tail:    tail,
		Logger:  logger,
		Verbose: verbose,
	})

	result, err := r.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range result.Output {
		fmt.Fprintln(out, e)
	}

	if verbose {
		printSummary(cmd.ErrOrStderr(), result)
	}
	return nil
}

func printSummary(w io.Writer, result *runner.Result) {
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(w, "Sort method:      %s\n", sortMethod)
	fmt.Fprintf(w, "Total elements:   %s\n", humanize.Comma(int64(result.Total)))
	fmt.Fprintf(w, "After filtering:  %s\n", humanize.Comma(int64(result.Filtered)))
	fmt.Fprintf(w, "After sorting:    %s\n", humanize.Comma(int64(result.Sorted)))
	fmt.Fprintf(w, "Printed:          %s\n", humanize.Comma(int64(len(result.Output))))
	if unique {
		fmt.Fprintf(w, "Duplicate values: %s\n", humanize.Comma(int64(result.Duplicates)))
	}
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

// newTracker returns the duplicate tracker shared by every key comparator,
// or nil when duplicates are not tracked
func newTracker() *compare.Tracker {
	if !unique {
		return nil
	}
	if noCase {
		return compare.NewTracker(compare.FoldHasher{})
	}
	return compare.NewTracker(compare.ExactHasher{})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
