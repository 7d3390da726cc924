// Package menu turns a weekly menu document into Mealie recipes and
// meal-plan entries.
//
// A menu is a JSON object with an ISO week number and one array of recipes
// per weekday. Recipes use the loose JSON-LD vocabulary recipe sites export:
// yields may be numbers, keywords may be a list, and instructions may be
// plain strings or HowToStep objects. Decode accepts all of those and
// validates the week.
//
// Processing runs Monday to Sunday. For each recipe the Processor looks it
// up by name and only creates it (and its missing foods) when absent, infers
// a meal type from keywords and description, then schedules it on that
// day's date. Failures are reported through the Reporter and counted in the
// Summary; they never stop the run.
package menu
