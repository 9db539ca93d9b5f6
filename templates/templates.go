// Package templates embeds the static assets served next to the templ
// components in components/ and pages/.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
