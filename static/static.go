// Package static holds the assets served by the HTTP API.
package static

import _ "embed"

// IndexHTML is the landing page served at GET /.
//
//go:embed index.html
var IndexHTML []byte
