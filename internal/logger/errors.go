package logger

import "errors"

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")

	// ErrLogPathIsEmpty is returned if file logging is enabled without Log.File.Path.
	ErrLogPathIsEmpty = errors.New("config Log.File.Path can not be empty when file logging is enabled")
)
