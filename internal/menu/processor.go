package menu

import (
	"context"
	"log/slog"

	"github.com/five82/mealie-menu/internal/mealie"
)

// Remote is the slice of the Mealie API the processor drives.
type Remote interface {
	IngredientEnsurer
	FindRecipeByName(ctx context.Context, name string) *mealie.Recipe
	CreateRecipe(ctx context.Context, payload mealie.RecipePayload) *mealie.Recipe
	CreateMealPlanEntry(ctx context.Context, date, entryType, recipeID string) *mealie.MealPlanEntry
}

var _ Remote = (*mealie.Client)(nil)

// Options configure a Processor. Zero values select the defaults.
type Options struct {
	Keywords KeywordTable
	Fallback MealType
	Reporter Reporter
	Logger   *slog.Logger
}

// Processor turns a Menu into recipes and meal-plan entries on the server.
type Processor struct {
	remote     Remote
	translator *Translator
	keywords   KeywordTable
	fallback   MealType
	report     Reporter
	logger     *slog.Logger
}

// NewProcessor returns a Processor that talks to remote.
func NewProcessor(remote Remote, opts Options) *Processor {
	p := &Processor{
		remote:   remote,
		keywords: opts.Keywords,
		fallback: opts.Fallback,
		report:   opts.Reporter,
		logger:   opts.Logger,
	}
	if p.keywords == nil {
		p.keywords = DefaultKeywordTable()
	}
	if p.fallback == "" {
		p.fallback = Dinner
	}
	if p.report == nil {
		p.report = Discard
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.translator = NewTranslator(remote, p.report)
	return p
}

// EnsureRecipe returns the server's recipe named like src, creating it when
// absent. Foods are only ensured when the recipe has to be created.
func (p *Processor) EnsureRecipe(ctx context.Context, src SourceRecipe) (recipe *mealie.Recipe, created bool) {
	name := src.DisplayName()
	if existing := p.remote.FindRecipeByName(ctx, name); existing != nil {
		p.report.RecipeExists(name, existing.Identifier())
		return existing, false
	}

	p.report.RecipeCreating(name)
	payload := p.translator.Translate(ctx, src)
	recipe = p.remote.CreateRecipe(ctx, payload)
	if recipe == nil {
		p.report.RecipeFailed(name)
		return nil, false
	}
	p.report.RecipeCreated(name, recipe.Identifier())
	return recipe, true
}

// ProcessWeeklyMenu walks the menu Monday to Sunday, ensuring each recipe
// and scheduling it on its day of ISO week m.Week of year. Remote failures
// skip the affected step only; the returned error is non-nil only when ctx
// ends the run early.
func (p *Processor) ProcessWeeklyMenu(ctx context.Context, m *Menu, year int) (Summary, error) {
	var summary Summary
	p.report.WeekStarted(m.Week, year)
	dates := WeekDates(year, m.Week)

	for _, day := range Days {
		recipes := day.Recipes(m)
		if len(recipes) == 0 {
			p.report.DayEmpty(day)
			continue
		}

		date := dates[day.Offset].Format(DateLayout)
		p.report.DayStarted(day, date)

		for _, src := range recipes {
			if err := ctx.Err(); err != nil {
				p.logger.WarnContext(ctx, "menu processing interrupted", "day", day.Name, "error", err)
				return summary, err
			}
			p.schedule(ctx, src, date, &summary)
		}
	}

	p.report.WeekFinished(m.Week, summary)
	return summary, nil
}

func (p *Processor) schedule(ctx context.Context, src SourceRecipe, date string, summary *Summary) {
	recipe, created := p.EnsureRecipe(ctx, src)
	switch {
	case recipe == nil:
		summary.RecipesFailed++
		return
	case created:
		summary.RecipesCreated++
	default:
		summary.RecipesExisting++
	}

	mealType := InferMealType(src, p.keywords, p.fallback)
	p.report.MealTypeInferred(mealType)

	recipeID := recipe.Identifier()
	if recipeID == "" {
		p.logger.WarnContext(ctx, "recipe has neither id nor slug; skipping meal plan", "name", src.DisplayName())
		p.report.MealPlanSkipped(src.DisplayName())
		summary.EntriesSkipped++
		return
	}

	p.report.MealPlanAdding(date)
	if entry := p.remote.CreateMealPlanEntry(ctx, date, string(mealType), recipeID); entry == nil {
		p.report.MealPlanFailed(date)
		summary.EntriesFailed++
		return
	}
	p.report.MealPlanCreated(date)
	summary.EntriesCreated++
}
