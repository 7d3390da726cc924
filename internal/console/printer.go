package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mealie-menu/internal/menu"
)

const (
	bannerWidth  = 60
	dayRuleWidth = 40
)

// Printer writes human-readable progress for a menu run. Colours are only
// emitted when w is a terminal that supports them.
type Printer struct {
	w     io.Writer
	style styles
}

var _ menu.Reporter = (*Printer)(nil)

// NewPrinter returns a Printer writing to w in the given theme.
func NewPrinter(w io.Writer, theme Theme) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{w: w, style: theme.styles(r)}
}

// Warn prints a highlighted notice outside the per-recipe flow.
func (p *Printer) Warn(format string, args ...any) {
	p.println(p.style.warning.Render("! " + fmt.Sprintf(format, args...)))
}

func (p *Printer) WeekStarted(week, year int) {
	p.banner(fmt.Sprintf("Processing Week %d Menu (%d)", week, year))
	p.println("")
}

func (p *Printer) DayEmpty(day menu.Day) {
	p.println("")
	p.println(p.style.muted.Render(day.Label() + ": No recipes"))
}

func (p *Printer) DayStarted(day menu.Day, date string) {
	p.println("")
	p.println(p.style.heading.Render(day.Label()) + p.style.text.Render(" ("+date+"):"))
	p.println(p.style.rule.Render(strings.Repeat("-", dayRuleWidth)))
}

func (p *Printer) RecipeExists(name, id string) {
	p.println(p.style.success.Render("✓") + fmt.Sprintf(" Recipe '%s' already exists (ID: %s)", name, id))
}

func (p *Printer) RecipeCreating(name string) {
	p.println(p.style.create.Render("+") + fmt.Sprintf(" Creating recipe '%s'", name))
}

func (p *Printer) RecipeCreated(_, id string) {
	p.println("  " + p.style.success.Render("✓") + fmt.Sprintf(" Recipe created successfully (ID: %s)", id))
}

func (p *Printer) RecipeFailed(name string) {
	p.println("  " + p.style.danger.Render("✗") + fmt.Sprintf(" Failed to create recipe '%s'", name))
}

func (p *Printer) IngredientsProcessing(count int) {
	p.println(fmt.Sprintf("  Processing %d ingredients...", count))
}

func (p *Printer) IngredientExists(name string) {
	p.println("  " + p.style.success.Render("✓") + fmt.Sprintf(" Ingredient '%s' already exists", name))
}

func (p *Printer) IngredientCreated(name string) {
	p.println("  " + p.style.create.Render("+") + fmt.Sprintf(" Created ingredient '%s'", name))
}

func (p *Printer) IngredientFailed(name string) {
	p.println("  " + p.style.danger.Render("✗") + fmt.Sprintf(" Failed to create ingredient '%s'", name))
}

func (p *Printer) MealTypeInferred(mealType menu.MealType) {
	p.println("  Meal type: " + p.style.heading.Render(string(mealType)))
}

func (p *Printer) MealPlanAdding(date string) {
	p.println(fmt.Sprintf("  Adding to meal plan for %s...", date))
}

func (p *Printer) MealPlanCreated(string) {
	p.println("  " + p.style.success.Render("✓") + " Meal plan entry created")
}

func (p *Printer) MealPlanFailed(string) {
	p.println("  " + p.style.danger.Render("✗") + " Failed to create meal plan entry")
}

func (p *Printer) MealPlanSkipped(name string) {
	p.println("  " + p.style.warning.Render("!") + fmt.Sprintf(" Skipping meal plan for '%s': recipe has no id or slug", name))
}

func (p *Printer) WeekFinished(week int, s menu.Summary) {
	p.banner(fmt.Sprintf("Week %d processing complete!", week))
	p.println(fmt.Sprintf("Recipes: %d created, %d existing, %d failed",
		s.RecipesCreated, s.RecipesExisting, s.RecipesFailed))
	p.println(fmt.Sprintf("Meal plan entries: %d created, %d failed, %d skipped",
		s.EntriesCreated, s.EntriesFailed, s.EntriesSkipped))
	p.println(p.style.rule.Render(strings.Repeat("=", bannerWidth)))
	p.println("")
}

func (p *Printer) banner(title string) {
	p.println("")
	p.println(p.style.rule.Render(strings.Repeat("=", bannerWidth)))
	p.println(p.style.heading.Render(title))
	p.println(p.style.rule.Render(strings.Repeat("=", bannerWidth)))
}

func (p *Printer) println(line string) {
	_, _ = fmt.Fprintln(p.w, line)
}
