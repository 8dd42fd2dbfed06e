// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging and lifecycle observation via ShellExecutor
// and exposes OSCommandRunner for default process execution. The GitHub CLI
// is the only executable this project drives, and the message formatter
// recognizes its repository metadata operations.
package execshell
