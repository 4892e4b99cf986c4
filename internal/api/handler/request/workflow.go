package request

import "encoding/json"

type NodeRequest struct {
	Name       string          `json:"name" validate:"required"`
	Type       string          `json:"type" validate:"required"`
	Xpos       float32         `json:"xpos"`
	Ypos       float32         `json:"ypos"`
	Parameters json.RawMessage `json:"parameters"`
}

type ConnectionRequest struct {
	SourceName string `json:"sourceName" validate:"required"`
	TargetName string `json:"targetName" validate:"required"`
}

type CreateWorkflowRequest struct {
	Name        string              `json:"name" validate:"required"`
	Active      bool                `json:"active"`
	Nodes       []NodeRequest       `json:"nodes"`
	Connections []ConnectionRequest `json:"connections"`
}

type UpdateWorkflowRequest struct {
	Name   string `json:"name" validate:"required"`
	Active bool   `json:"active"`
}

// StoreRunDataRequest carries the latest execution output, keyed by node name
type StoreRunDataRequest struct {
	RunData map[string]json.RawMessage `json:"runData" validate:"required"`
}

type PinSampleRequest struct {
	Sample json.RawMessage `json:"sample" validate:"required"`
}
