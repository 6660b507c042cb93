package devblog

import "embed"

// EmbeddedAssets holds the stylesheet served at /public/style.css.
//
//go:embed assets/*
var EmbeddedAssets embed.FS
