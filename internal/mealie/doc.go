// Package mealie provides an HTTP client for the Mealie recipe server API.
//
// # Overview
//
// The client covers the handful of endpoints mealie-menu needs to make a
// weekly menu exist on the server: foods (ingredients), recipes and group
// meal-plan entries. It never updates or deletes anything.
//
// # Architecture
//
//   - client.go: Client, request plumbing and the typed operations
//   - types.go: records returned by the server and the recipe document posted to it
//   - shape.go: classification of loosely-shaped JSON responses
//   - errors.go: StatusError for non-2xx responses
//
// # API Endpoints
//
// Paths are relative to {base_url}/api:
//
//   - GET /foods, POST /foods
//   - GET /recipes, POST /recipes
//   - POST /groups/mealplans
//
// Listings are requested with perPage=-1 so one response holds every row.
//
// # Request Handling
//
// All requests:
//   - Carry Authorization: Bearer <token> and Content-Type: application/json
//   - Set Accept: application/json and User-Agent: mealie-menu/0.1
//   - Use the caller's context and the client timeout (30 seconds by default)
//
// # Error Handling
//
// Remote failures never escape the public operations. A transport failure,
// a non-2xx status or an unrecognised response shape is logged through the
// client's slog.Logger and turned into nil or an empty slice, so callers treat
// "lookup failed" exactly like "not found". Creation failures log the response
// body because Mealie's validation messages live there.
//
// # Response Shapes
//
// Food listings have been observed as a bare array, an {"items": [...]} page
// and an object keyed by id. Recipe creation answers with the record, a bare
// identifier string or a one-element array. Each endpoint classifies its
// payload into a small tagged type (listingShape, createdShape) and
// normalises from there instead of probing types at every call site.
//
// # Name Matching
//
// FindIngredientByName and FindRecipeByName compare trimmed names with
// Unicode case folding, so "  Ajvár " matches "ajvár". Each lookup re-fetches
// the listing; nothing is cached between calls.
//
// # Thread Safety
//
// The Client holds no mutable state after construction and is safe for
// concurrent use, although mealie-menu only ever calls it from one goroutine.
package mealie
