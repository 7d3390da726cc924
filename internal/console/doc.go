// Package console renders menu processing progress for a person at a
// terminal.
//
// Printer implements menu.Reporter. It writes one line per event using the
// wording of the importer's log (banners, per-day headers, ✓ / + / ✗
// markers) and colours them with a lipgloss theme. The renderer is bound to
// the output writer, so piping the output to a file or another program
// yields plain text.
package console
