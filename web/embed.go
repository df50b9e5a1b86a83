// Package web holds the browser-side player: the page template and the
// static assets it loads.
package web

import "embed"

//go:embed templates static
var FS embed.FS
