package objectstore

import "errors"

var (
	// ErrObjectExists is returned by Upload when the path is taken.
	ErrObjectExists = errors.New("object already exists")
	// ErrInvalidPath is returned for empty paths or paths leaving their bucket.
	ErrInvalidPath = errors.New("invalid object path")
	// ErrInvalidBucket is returned for empty or nested bucket names.
	ErrInvalidBucket = errors.New("invalid bucket name")
	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotAnImage is returned when the content is not an image.
	ErrNotAnImage = errors.New("file is not an image")
	// ErrEmptyFile is returned for uploads without content.
	ErrEmptyFile = errors.New("file is empty")
)
