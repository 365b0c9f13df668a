// Package avatar turns a user-selected picture into an inline data URL. A
// read runs on its own goroutine and reports exactly one Result on a
// one-shot channel, so interactive callers can keep handling input while the
// bytes are loaded.
//
// Accepted formats are PNG, JPEG, GIF, WebP and BMP. Bytes are sniffed and
// their header decoded to confirm the type, but images are never resized or
// re-encoded.
package avatar
