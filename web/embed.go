package web

import "embed"

// Templates embeds HTML templates.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static embeds static assets.
//
//go:embed static/**/*
var Static embed.FS

// DefaultConfig embeds the example projection snapshot pre-filled into the
// web form.
//
//go:embed config.example.json
var DefaultConfig []byte
