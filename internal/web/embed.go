package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

const (
	templatesDir = "templates"
	staticDir    = "static"
	// devTemplatesDir is read from disk in dev mode so edits show without a rebuild.
	devTemplatesDir = "./internal/web/" + templatesDir
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// dirFS opens names relative to one directory of an embedded tree.
type dirFS struct {
	content embed.FS
	dir     string
}

// Open implements fs.FS.
func (d dirFS) Open(name string) (fs.File, error) {
	return d.content.Open(path.Join(d.dir, name))
}

// templatesFS returns the embedded page templates.
func templatesFS() http.FileSystem {
	return http.FS(dirFS{content: embeddedTemplates, dir: templatesDir})
}

// staticFS returns the embedded css and js assets.
func staticFS() http.FileSystem {
	return http.FS(dirFS{content: embeddedStaticFiles, dir: staticDir})
}
