package response

type GenerateResponse struct {
	Status string `json:"status"`
}

type SubmitCheckResponse struct {
	CanSubmit bool   `json:"canSubmit"`
	Reason    string `json:"reason,omitempty"`
}

type DraftResponse struct {
	Prompt string `json:"prompt"`
}
