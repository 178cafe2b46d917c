package gowweb

import "embed"

//go:embed locales/*.toml
var Locales embed.FS

//go:embed web/templates/*.tmpl
var Templates embed.FS
