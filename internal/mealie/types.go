package mealie

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Food is an ingredient record as listed by /api/foods.
type Food struct {
	ID   string
	Name string
	Raw  json.RawMessage
}

// Recipe is the subset of a Mealie recipe the tool relies on.
type Recipe struct {
	ID   string
	Slug string
	Name string
	Raw  json.RawMessage
}

// Identifier returns the id, or the slug when the server sent no id.
func (r Recipe) Identifier() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Slug
}

// MealPlanEntry mirrors a created /api/groups/mealplans record.
type MealPlanEntry struct {
	ID        string
	Date      string
	EntryType string
	RecipeID  string
}

// RecipePayload is the document posted to /api/recipes.
type RecipePayload struct {
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	RecipeYield        string             `json:"recipeYield"`
	RecipeIngredient   []RecipeIngredient `json:"recipeIngredient"`
	RecipeInstructions []Instruction      `json:"recipeInstructions"`
	Notes              []string           `json:"notes"`
	Tags               []string           `json:"tags"`
	Settings           RecipeSettings     `json:"settings"`
	Nutrition          *Nutrition         `json:"nutrition,omitempty"`
}

// RecipeIngredient is one structured ingredient line of a recipe.
type RecipeIngredient struct {
	Title         string        `json:"title"`
	Note          string        `json:"note"`
	Unit          string        `json:"unit"`
	Quantity      string        `json:"quantity"`
	Food          FoodReference `json:"food"`
	DisableAmount bool          `json:"disableAmount"`
	Display       string        `json:"display"`
}

// FoodReference points an ingredient line at a food by name.
type FoodReference struct {
	Name string `json:"name"`
}

// Instruction is one numbered step.
type Instruction struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Nutrition carries the per-serving values copied from the source recipe.
type Nutrition struct {
	Calories            string `json:"calories"`
	Protein             string `json:"protein"`
	FatContent          string `json:"fatContent"`
	CarbohydrateContent string `json:"carbohydrateContent"`
}

// RecipeSettings is the settings block attached to every created recipe.
type RecipeSettings struct {
	Public          bool `json:"public"`
	ShowNutrition   bool `json:"showNutrition"`
	ShowAssets      bool `json:"showAssets"`
	LandscapeView   bool `json:"landscapeView"`
	DisableComments bool `json:"disableComments"`
	DisableAmount   bool `json:"disableAmount"`
}

// DefaultRecipeSettings returns the settings every created recipe carries.
func DefaultRecipeSettings() RecipeSettings {
	return RecipeSettings{
		Public:        true,
		ShowNutrition: true,
		ShowAssets:    true,
	}
}

type foodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type mealPlanRequest struct {
	Date      string `json:"date"`
	EntryType string `json:"entryType"`
	RecipeID  string `json:"recipeId"`
}

func foodFromResult(r gjson.Result) Food {
	if !r.IsObject() {
		return Food{Name: r.String(), Raw: json.RawMessage(r.Raw)}
	}
	name := r.Get("name").String()
	if name == "" {
		name = r.Get("title").String()
	}
	return Food{ID: r.Get("id").String(), Name: name, Raw: json.RawMessage(r.Raw)}
}

func recipeFromResult(r gjson.Result) Recipe {
	return Recipe{
		ID:   r.Get("id").String(),
		Slug: r.Get("slug").String(),
		Name: r.Get("name").String(),
		Raw:  json.RawMessage(r.Raw),
	}
}
