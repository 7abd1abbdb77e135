package response

const (
	// MessageSuccess is the message attached to successful responses.
	MessageSuccess = "Success"

	// DefaultErrorMessage hides internal error details from callers.
	DefaultErrorMessage = "Something went wrong"

	// InternalServerErrorCode is the error_code for unclassified failures.
	InternalServerErrorCode = 500
)
