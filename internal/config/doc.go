// Package config resolves how mealie-menu reaches a Mealie server.
//
// # Overview
//
// The tool needs two things before it may send a request: the server base URL
// and an API token. Both normally come from the environment; a TOML file can
// carry the same values plus a few optional knobs.
//
// # Resolution Order
//
// Values are layered, later sources winning:
//
//  1. Built-in defaults
//  2. ~/.config/mealie-menu/config.toml, or the path given with -config
//  3. Environment variables (a .env file in the working directory is loaded
//     first by LoadDotEnv and never overrides variables already set)
//
// A missing TOML file is not an error. Malformed TOML is.
//
// # Environment Variables
//
//   - MEALIE_BASE_URL: server URL (default http://localhost:9000)
//   - MEALIE_API_TOKEN: API token (required)
//
// Trailing slashes are stripped from the base URL so request paths can be
// appended with a single "/api" prefix.
//
// # TOML Format
//
//	base_url = "http://mealie.lan:9925"
//	api_token = "eyJhbGciOi..."
//	timeout_seconds = 30
//	theme = "Kanagawa"
//
//	[[meal_types]]
//	keyword = "reggeli"
//	type = "breakfast"
//
// When meal_types is present it replaces the built-in keyword table, keeping
// the declared order. Types must be one of breakfast, lunch, dinner or snack.
//
// # Error Handling
//
// A missing token yields *ConfigurationError. Its Remediation method returns
// the hint the CLI prints before exiting with status 1. Load never touches the
// network, so this check always happens before any request.
//
// TokenExpiry decodes the exp claim of a JWT token without verifying it, which
// lets the app warn about an expired token up front.
package config
