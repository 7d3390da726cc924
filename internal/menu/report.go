package menu

// Reporter receives progress as a menu is processed. Implementations render
// it for people; nothing depends on the output format.
type Reporter interface {
	WeekStarted(week, year int)
	DayStarted(day Day, date string)
	DayEmpty(day Day)
	RecipeExists(name, id string)
	RecipeCreating(name string)
	RecipeCreated(name, id string)
	RecipeFailed(name string)
	IngredientsProcessing(count int)
	IngredientExists(name string)
	IngredientCreated(name string)
	IngredientFailed(name string)
	MealTypeInferred(mealType MealType)
	MealPlanAdding(date string)
	MealPlanCreated(date string)
	MealPlanFailed(date string)
	MealPlanSkipped(name string)
	WeekFinished(week int, summary Summary)
}

// Summary counts what a run did.
type Summary struct {
	RecipesCreated  int
	RecipesExisting int
	RecipesFailed   int
	EntriesCreated  int
	EntriesFailed   int
	EntriesSkipped  int
}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) WeekStarted(int, int) {}
func (discard) DayStarted(Day, string) {}
func (discard) DayEmpty(Day) {}
func (discard) RecipeExists(string, string) {}
func (discard) RecipeCreating(string) {}
func (discard) RecipeCreated(string, string) {}
func (discard) RecipeFailed(string) {}
func (discard) IngredientsProcessing(int) {}
func (discard) IngredientExists(string) {}
func (discard) IngredientCreated(string) {}
func (discard) IngredientFailed(string) {}
func (discard) MealTypeInferred(MealType) {}
func (discard) MealPlanAdding(string) {}
func (discard) MealPlanCreated(string) {}
func (discard) MealPlanFailed(string) {}
func (discard) MealPlanSkipped(string) {}
func (discard) WeekFinished(int, Summary) {}
