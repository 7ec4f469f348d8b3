package config

import (
	"time"

	"github.com/labrocante/brocante/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Storage   Storage
	Settings  Settings
	Admin     Admin
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// Storage configures the object storage holding product and site images.
type Storage struct {
	Root          string // directory holding one sub directory per bucket
	PublicURL     string // url prefix objects are served under, defaults to Webserver.URL + /storage
	ProductBucket string
	SiteBucket    string
	MaxUploadSize int64 // bytes
}

// Settings configures the site settings cache.
type Settings struct {
	// WaitTimeout is how long storefront pages wait for the first settings snapshot.
	WaitTimeout time.Duration
}

// Admin is the account seeded when no user exists yet.
type Admin struct {
	Username string
	Email    string
	Password string
}
