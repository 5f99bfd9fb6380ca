package web

import "embed"

// StaticFS holds the storefront's static assets under static/, including the
// product placeholder image.
//
//go:embed static
var StaticFS embed.FS
