package request

type GenerateRequest struct {
	WorkflowID     uint   `json:"workflowId" validate:"required"`
	NodeName       string `json:"nodeName" validate:"required"`
	SessionID      string `json:"sessionId" validate:"required"`
	Prompt         string `json:"prompt" validate:"required"`
	HasChangedCode bool   `json:"hasChangedCode"`
}

type SubmitCheckRequest struct {
	WorkflowID uint   `json:"workflowId" validate:"required"`
	NodeName   string `json:"nodeName" validate:"required"`
	SessionID  string `json:"sessionId" validate:"required"`
	Prompt     string `json:"prompt"`
}

type SaveDraftRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	NodeName  string `json:"nodeName" validate:"required"`
	Prompt    string `json:"prompt"`
}
