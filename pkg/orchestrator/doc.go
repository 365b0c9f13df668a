// Package orchestrator resolves a catalog template, asks the theme selector
// for its tokens and hands the profile to a named renderer. It is the one
// entry point the export pipeline, the shell and the server render through.
package orchestrator
