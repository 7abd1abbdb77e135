package event

import "errors"

var (
	ErrEmptyImage            = errors.New("uploaded image is empty")
	ErrUnsupportedImageType  = errors.New("unsupported image type")
	ErrImageTooLarge         = errors.New("image exceeds the size limit")
	ErrUnparseableResponse   = errors.New("model response is not a parseable event")
	ErrMissingOrInvalidStart = errors.New("event has no usable start time")
	ErrInvalidTimeRange      = errors.New("event ends before it starts")
	ErrProviderFailure       = errors.New("upstream provider failure")
)
