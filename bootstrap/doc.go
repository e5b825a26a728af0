// Package bootstrap runs the gallery's commands with a uniform lifecycle:
// start components, run configure callbacks, check readiness, then either
// block on a shutdown signal (Run) or execute a finite task (RunTask), and
// finally stop components in reverse order.
package bootstrap
