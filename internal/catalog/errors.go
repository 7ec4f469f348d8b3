package catalog

import "errors"

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category id or name does not resolve.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when a category name is already taken.
	ErrCategoryExists = errors.New("category already exists")
	// ErrFileNotFound is returned when a bucket file can not be deleted because it is missing.
	ErrFileNotFound = errors.New("file not found")
	// ErrNoObjectStore is returned by media operations on a repository without store.
	ErrNoObjectStore = errors.New("no object store configured")
)
