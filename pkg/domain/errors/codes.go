package errors

// Code represents an error code
type Code string

const (
	CodeUnknown              Code = "UNKNOWN"               // Unknown error occurred
	CodeInternalError        Code = "INTERNAL_ERROR"        // Internal system error
	CodeInvalidParameter     Code = "INVALID_PARAMETER"     // Invalid parameter provided
	CodeIoError              Code = "IO_ERROR"              // Input/output operation failed
	CodeFileNotFound         Code = "FILE_NOT_FOUND"        // File not found
	CodeConfigurationInvalid Code = "CONFIGURATION_INVALID" // Configuration invalid
)
