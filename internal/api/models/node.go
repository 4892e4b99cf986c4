package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type NodeData []byte

// Scan implements sql.Scanner interface
func (n *NodeData) Scan(value interface{}) error {
	if value == nil {
		*n = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*n = v
		return nil
	case string:
		*n = []byte(v)
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into NodeData", value)
	}
}

// Value implements driver.Valuer interface
func (n NodeData) Value() (driver.Value, error) {
	if n == nil {
		return nil, nil
	}
	return []byte(n), nil
}

// MarshalJSON implements json.Marshaler - returns raw JSON
func (n NodeData) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	return n, nil
}

// UnmarshalJSON implements json.Unmarshaler - stores raw JSON
func (n *NodeData) UnmarshalJSON(data []byte) error {
	if data == nil {
		*n = nil
		return nil
	}
	*n = data
	return nil
}

type NodeType string

const (
	NodeTypeTrigger NodeType = "trigger"
	NodeTypeCode    NodeType = "code"
	NodeTypeHTTP    NodeType = "http"
	NodeTypeSet     NodeType = "set"
)

// ExecutionMode controls how a code node consumes its input: once with all
// items, or once per item. Generation only supports the all-items mode.
type ExecutionMode string

const (
	ModeAllItems ExecutionMode = "all_items"
	ModeEachItem ExecutionMode = "each_item"
)

type Node struct {
	ID   int `json:"id"`
	// Type of the node. It has to be immutable
	Type NodeType
	// Name is unique within a workflow and is how connections refer to the node
	Name string
	Xpos float32
	Ypos float32
	// Parameters holds the node's type-specific configuration
	Parameters NodeData `json:"parameters" gorm:"type:jsonb"`

	WorkflowID uint `gorm:"index" json:"workflowId"`
}

// CodeParameters is the configuration stored on a code node
type CodeParameters struct {
	Mode ExecutionMode `json:"mode,omitempty"`
	Code string        `json:"code,omitempty"`
}

// SetParameters serializes and stores typed node configuration
func (slf *Node) SetParameters(params any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	slf.Parameters = data
	return nil
}

// GetTypedParameters deserializes the JSON parameters into the expected type
func GetTypedParameters[T any](node Node) (T, error) {
	var result T
	if node.Parameters == nil {
		return result, fmt.Errorf("node %q has no parameters", node.Name)
	}
	if err := json.Unmarshal(node.Parameters, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal parameters: %w", err)
	}
	return result, nil
}

// Mode returns the node's execution mode, defaulting to ModeAllItems when the
// parameter is absent or unreadable.
func (slf Node) Mode() ExecutionMode {
	params, err := GetTypedParameters[CodeParameters](slf)
	if err != nil || params.Mode == "" {
		return ModeAllItems
	}
	return params.Mode
}
