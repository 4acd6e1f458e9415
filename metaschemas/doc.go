// Package metaschemas is unused as a Go package; its JSON files are pulled
// in directly by the parent package via go:embed.
package metaschemas
