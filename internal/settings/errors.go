package settings

import "errors"

var (
	// ErrSettingNotFound is returned by Update for a key without row.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrNoImageStore is returned by UpdateWithImage when the cache has no object store.
	ErrNoImageStore = errors.New("no image store configured")
)
