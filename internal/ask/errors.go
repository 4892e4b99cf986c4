package ask

import (
	"askai/pkg"
	"errors"
)

// User-facing messages for failed generations, keyed by what the service
// answered. Anything outside the two special cases falls back to the generic
// message.
const (
	MsgGenerationFailed = "Something went wrong while generating code. Please try again."
	MsgPayloadTooLarge  = "Your workflow data is too large for the assistant to process. Reduce the input sample and try again."
	MsgRateLimited      = "The assistant is handling too many requests right now. Please try again in a few minutes."
)

// StatusOf extracts the HTTP status carried by a generation error. It reads
// the direct status first, then the nested response status, and returns 0
// when neither is present. It never panics.
func StatusOf(err error) int {
	var reqErr *pkg.RequestError
	if !errors.As(err, &reqErr) || reqErr == nil {
		return 0
	}
	if reqErr.StatusCode != 0 {
		return reqErr.StatusCode
	}
	if reqErr.Response != nil {
		return reqErr.Response.StatusCode
	}
	return 0
}

// ClassifyStatus maps an HTTP status to a user-facing failure message.
func ClassifyStatus(status int) string {
	switch status {
	case 413:
		return MsgPayloadTooLarge
	case 429:
		return MsgRateLimited
	default:
		return MsgGenerationFailed
	}
}

// ClassifyError maps a generation error to a user-facing failure message.
func ClassifyError(err error) string {
	return ClassifyStatus(StatusOf(err))
}
