// Package shell holds the application state shared by every front end: the
// active view, the selected template and the editor. It talks to the outside
// world only through the Notifier and Navigator ports.
package shell
