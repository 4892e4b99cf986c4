package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// NodeSchema pairs an upstream node name with the schema inferred from its
// sample data.
type NodeSchema struct {
	NodeName string `json:"nodeName"`
	Schema   any    `json:"schema"`
}

// CodegenContext is the data-shape context attached to a generation request.
// InputSchema describes the node's direct input; Schemas carries the
// remaining upstream nodes.
type CodegenContext struct {
	InputSchema any          `json:"inputSchema,omitempty"`
	Schemas     []NodeSchema `json:"schema,omitempty"`
}

type CodegenPayload struct {
	Question string         `json:"question"`
	Context  CodegenContext `json:"context"`
	Model    string         `json:"model"`
	Version  string         `json:"version"`
}

type GenerationResult struct {
	Code   string `json:"code"`
	Tokens *int   `json:"tokens,omitempty"`
}

type codegenRawResponse struct {
	Code  string `json:"code"`
	Usage struct {
		TotalTokens *int `json:"totalTokens"`
	} `json:"usage"`
}

// ResponseInfo mirrors the service response attached to a failed call.
type ResponseInfo struct {
	StatusCode int    `json:"status"`
	Body       string `json:"body,omitempty"`
}

// RequestError is returned when the generation service answers with a non-2xx
// status. The status is carried both directly and on the nested response so
// callers can read whichever survives wrapping.
type RequestError struct {
	StatusCode int
	Response   *ResponseInfo
}

func (slf *RequestError) Error() string {
	return fmt.Sprintf("codegen request failed with status %d", slf.StatusCode)
}

// CodegenClient talks to the remote code generation service.
type CodegenClient struct {
	host   string
	client *http.Client
}

func NewCodegenClient(host string) *CodegenClient {
	return &CodegenClient{
		host:   host,
		client: &http.Client{},
	}
}

// GenerateCode posts the prompt and its schema context to the generation
// service and returns the generated code. A non-2xx answer yields a
// *RequestError carrying the HTTP status.
func (slf *CodegenClient) GenerateCode(ctx context.Context, payload CodegenPayload) (GenerationResult, error) {
	var result GenerationResult

	data, err := json.Marshal(payload)
	if err != nil {
		AssertNoError(err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/api/v1/generate", slf.host),
		bytes.NewBuffer(data),
	)
	if err != nil {
		AssertNoError(err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := slf.client.Do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &RequestError{
			StatusCode: resp.StatusCode,
			Response:   &ResponseInfo{StatusCode: resp.StatusCode, Body: string(body)},
		}
	}

	var raw codegenRawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return result, err
	}

	result.Code = raw.Code
	result.Tokens = raw.Usage.TotalTokens
	return result, nil
}
