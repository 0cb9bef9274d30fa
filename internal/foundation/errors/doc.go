// Package errors provides the classified error primitives used across sitegen.
//
// A ClassifiedError carries a category (config, filesystem, template, ...) and a
// severity next to the usual message and cause. The CLI adapter turns the
// category into a process exit code.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryTemplate, "parse templates").
//		WithContext("dir", dir).
//		Build()
package errors
