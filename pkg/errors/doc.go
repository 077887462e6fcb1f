// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeManifest,
//	    "manifest document is not a mapping",
//	    cause,
//	    map[string]interface{}{
//	        "index": i,
//	        "path": path,
//	    },
//	)
package errors
