// Package terminal provides the console capability used by the compositor.
//
// Features:
//   - Raw, echo-off console setup and teardown on tcell
//   - Attribute-free text writes at (row, col) and an explicit flush
//   - Non-blocking single key reads fed by a background event pump
//   - Emergency restoration of cooked mode from a crash path
//
// The compositor depends only on the Lifecycle, Painter and KeySource
// interfaces; TcellConsole is the production implementation.
package terminal
