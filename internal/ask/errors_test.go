package ask

import (
	"askai/pkg"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 413, StatusOf(&pkg.RequestError{StatusCode: 413}))

	// direct status wins over the nested one
	assert.Equal(t, 429, StatusOf(&pkg.RequestError{
		StatusCode: 429,
		Response:   &pkg.ResponseInfo{StatusCode: 500},
	}))

	// nested response status is the fallback
	assert.Equal(t, 500, StatusOf(&pkg.RequestError{
		Response: &pkg.ResponseInfo{StatusCode: 500},
	}))

	// wrapped errors are unwrapped
	wrapped := fmt.Errorf("generation: %w", &pkg.RequestError{StatusCode: 413})
	assert.Equal(t, 413, StatusOf(wrapped))

	// no status anywhere must not panic
	assert.Equal(t, 0, StatusOf(&pkg.RequestError{}))
	assert.Equal(t, 0, StatusOf(errors.New("connection refused")))
	assert.Equal(t, 0, StatusOf(nil))
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{413, MsgPayloadTooLarge},
		{429, MsgRateLimited},
		{400, MsgGenerationFailed},
		{500, MsgGenerationFailed},
		{502, MsgGenerationFailed},
		{418, MsgGenerationFailed},
		{0, MsgGenerationFailed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStatus(tt.status), "status %d", tt.status)
	}
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, MsgPayloadTooLarge, ClassifyError(&pkg.RequestError{StatusCode: 413}))
	assert.Equal(t, MsgRateLimited, ClassifyError(&pkg.RequestError{StatusCode: 429}))
	assert.Equal(t, MsgGenerationFailed, ClassifyError(errors.New("timeout")))
}
