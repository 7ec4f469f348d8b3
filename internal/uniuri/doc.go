// Package uniuri generates short random tokens used to keep uploaded object
// names from colliding.
package uniuri
