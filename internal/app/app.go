package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/five82/mealie-menu/internal/config"
	"github.com/five82/mealie-menu/internal/console"
	"github.com/five82/mealie-menu/internal/mealie"
	"github.com/five82/mealie-menu/internal/menu"
)

// Options configure a mealie-menu run.
type Options struct {
	ConfigPath string // empty uses ~/.config/mealie-menu/config.toml
	DotEnvPath string // empty uses .env in the working directory
	MenuPath   string // empty reads the menu from Stdin
	Year       int    // zero uses the menu's year, then the current year
	Verbose    bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
}

const defaultDotEnvPath = ".env"

func (o Options) withDefaults() Options {
	if o.DotEnvPath == "" {
		o.DotEnvPath = defaultDotEnvPath
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Run imports one weekly menu into Mealie. Configuration and input problems
// are returned before any request is made; remote failures are reported and
// counted but do not fail the run.
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	if err := config.LoadDotEnv(opts.DotEnvPath); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(opts.Stderr, opts.Verbose).With("run_id", uuid.NewString())
	if !lo.Contains(console.ThemeNames(), cfg.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme, "available", console.ThemeNames())
	}
	printer := console.NewPrinter(opts.Stdout, console.GetTheme(cfg.Theme))

	if exp, ok := config.TokenExpiry(cfg.APIToken); ok && exp.Before(opts.Now()) {
		logger.Warn("api token has expired", "expired_at", exp.UTC().Format(time.RFC3339))
		printer.Warn("%s expired on %s; requests will likely be rejected", config.EnvAPIToken, exp.UTC().Format(time.DateOnly))
	}

	if opts.MenuPath == "" {
		logger.Info("reading menu JSON from stdin")
	}
	m, err := menu.Load(opts.MenuPath, opts.Stdin)
	if err != nil {
		return err
	}

	client, err := mealie.NewClient(cfg.BaseURL, cfg.APIToken,
		mealie.WithLogger(logger),
		mealie.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("init mealie client: %w", err)
	}

	processor := menu.NewProcessor(client, menu.Options{
		Keywords: keywordTable(cfg.MealTypes),
		Reporter: printer,
		Logger:   logger,
	})

	year := resolveYear(opts.Year, m.Year, opts.Now())
	logger.Debug("processing menu", "week", m.Week, "year", year, "base_url", cfg.BaseURL)

	summary, err := processor.ProcessWeeklyMenu(ctx, m, year)
	if err != nil {
		return fmt.Errorf("process week %d: %w", m.Week, err)
	}
	logger.Debug("menu processed",
		"recipes_created", summary.RecipesCreated,
		"recipes_existing", summary.RecipesExisting,
		"recipes_failed", summary.RecipesFailed,
		"entries_created", summary.EntriesCreated,
		"entries_failed", summary.EntriesFailed,
		"entries_skipped", summary.EntriesSkipped,
	)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// keywordTable converts configured rules; none keeps the built-in table.
func keywordTable(rules []config.MealTypeRule) menu.KeywordTable {
	if len(rules) == 0 {
		return menu.DefaultKeywordTable()
	}
	return lo.Map(rules, func(r config.MealTypeRule, _ int) menu.KeywordRule {
		return menu.KeywordRule{Keyword: r.Keyword, MealType: menu.MealType(r.Type)}
	})
}

func resolveYear(flagYear, menuYear int, now time.Time) int {
	switch {
	case flagYear > 0:
		return flagYear
	case menuYear > 0:
		return menuYear
	default:
		return now.Year()
	}
}
