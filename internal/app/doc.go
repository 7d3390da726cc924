// Package app is the composition root of mealie-menu.
//
// # Overview
//
// Run performs one import: it resolves configuration, reads the menu,
// builds the Mealie client and drives menu.Processor with a console.Printer
// attached. It returns once every day of the menu has been handled.
//
// # Startup Sequence
//
//  1. Load .env from the working directory without overriding the environment
//  2. config.Load merges defaults, the TOML file and MEALIE_* variables
//  3. Build the slog logger (stderr, debug with -v) tagged with a run id
//  4. Warn when the API token is a JWT whose exp claim has passed
//  5. menu.Load reads the file argument or stdin
//  6. mealie.NewClient with the configured timeout
//  7. Processor.ProcessWeeklyMenu for the resolved ISO year
//
// Steps 1-5 make no network requests, so configuration and input mistakes
// fail fast.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - *config.ConfigurationError: missing API token
//   - wrapped config errors: unreadable or invalid config file or .env
//   - *menu.InputError: unreadable menu file or malformed JSON
//   - context cancellation (SIGINT/SIGTERM) interrupting the run
//
// Recoverable errors (reported, run continues):
//   - Any failed Mealie request; the affected recipe, food or entry is
//     marked failed in the progress output and counted in the summary
//
// # Year Resolution
//
// The -year flag wins, then the menu's "year" field, then the current
// calendar year.
package app
