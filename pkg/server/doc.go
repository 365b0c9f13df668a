// Package server exposes the portfolio editor over HTTP. Every request that
// touches the profile is serialised through one mutex, and changes are pushed
// to websocket clients in the order they happen.
package server
