// Package export turns a profile into a standalone HTML document and hands the
// result to a Saver. The document embeds the layout stylesheet and theme
// variables so it opens without network access.
package export
