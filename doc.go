// Package main provides the entry point of La Brocante, the web shop of a
// second hand store. It runs a Fiber web server with the public catalog
// (home, product listing and detail, contact, location) and a session
// protected back office to manage products, categories, site settings and
// uploaded images. Data is kept with gorm in mysql, postgres or sqlite and
// images in bucket directories served under /storage.
package main
