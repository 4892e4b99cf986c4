package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PinData maps a node name to a fixed JSON sample manually attached to that
// node. Pinned samples take priority over live execution output.
type PinData map[string]json.RawMessage

// Scan implements sql.Scanner interface
func (p *PinData) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan type %T into PinData", value)
	}
}

// Value implements driver.Valuer interface
func (p PinData) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Connection is a directed edge between two nodes of the same workflow,
// identified by node name.
type Connection struct {
	ID         uint   `json:"id"`
	WorkflowID uint   `gorm:"index" json:"workflowId"`
	SourceName string `json:"sourceName"`
	TargetName string `json:"targetName"`
}

type Workflow struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Active      bool         `json:"active"`
	Nodes       []Node       `gorm:"foreignKey:WorkflowID" json:"nodes"`
	Connections []Connection `gorm:"foreignKey:WorkflowID" json:"connections"`
	PinData     PinData      `gorm:"type:jsonb" json:"pinData,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NodeByName returns the node with the given name, or nil when absent.
func (slf *Workflow) NodeByName(name string) *Node {
	for i := range slf.Nodes {
		if slf.Nodes[i].Name == name {
			return &slf.Nodes[i]
		}
	}
	return nil
}

// SourcesOf returns the names of the nodes feeding directly into the given
// node, in connection order.
func (slf *Workflow) SourcesOf(name string) []string {
	var sources []string
	for _, conn := range slf.Connections {
		if conn.TargetName == name {
			sources = append(sources, conn.SourceName)
		}
	}
	return sources
}

// PinnedSample returns the pinned sample for a node, or nil when none is set.
func (slf *Workflow) PinnedSample(nodeName string) json.RawMessage {
	if slf.PinData == nil {
		return nil
	}
	return slf.PinData[nodeName]
}
