// Package tui fills a profile interactively in the terminal. Prompts go
// through the PromptDriver interface; the default driver uses survey.
package tui
