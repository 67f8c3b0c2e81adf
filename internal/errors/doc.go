// Package errors provides the classified error type used for fatal failures.
//
// Broken links are never errors: they are findings collected in a report.
// A ClassifiedError is reserved for conditions that stop a run, such as an
// entry path that does not exist or a configuration file that cannot be
// parsed. The category drives the process exit code in the CLI adapter.
//
// Example usage:
//
//	err := errors.NotFoundError("input path does not exist").
//		WithContext("path", path).
//		WithCause(statErr).
//		Build()
package errors
