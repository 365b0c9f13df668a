// Package editor applies form edits to a profile. Each mutation produces a
// fresh profile.Profile value (the previous value is never modified) and is
// propagated synchronously to every subscribed observer before the call
// returns.
package editor
