package websocket

import (
	"time"
)

type MessageType string

const (
	// Outbound to the editor
	MessageTypeCodeReplace    MessageType = "codeReplace"
	MessageTypeLoading        MessageType = "loading"
	MessageTypeProgress       MessageType = "progress"
	MessageTypeToast          MessageType = "toast"
	MessageTypeConfirmRequest MessageType = "confirmRequest"
	MessageTypeError          MessageType = "error"

	// Inbound from the editor
	MessageTypeConfirmResponse MessageType = "confirmResponse"
)

// Message is the base message structure
// Data field uses 'any' to allow different types through channels
type Message struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data"`
}

// CodeReplace tells the editor to swap the node's code for the generated one
type CodeReplace struct {
	Code string `json:"code"`
}

// LoadingState signals generation start/stop so the host can disable the
// surrounding chrome
type LoadingState struct {
	IsLoading bool `json:"isLoading"`
}

// ProgressUpdate carries the time-based progress bar state and the current
// rotating phrase
type ProgressUpdate struct {
	Progress int    `json:"progress"`
	Phrase   string `json:"phrase"`
}

// Toast is a user-facing notification
type Toast struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

// ConfirmRequest asks the user a blocking yes/no question; the editor answers
// with a ConfirmResponse carrying the same ID
type ConfirmRequest struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type ConfirmResponse struct {
	ID        string `json:"id"`
	Confirmed bool   `json:"confirmed"`
}

func newMessage(msgType MessageType, sessionID string, data any) Message {
	return Message{
		Type:      msgType,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewCodeReplaceMessage(sessionID string, code string) Message {
	return newMessage(MessageTypeCodeReplace, sessionID, CodeReplace{Code: code})
}

func NewLoadingMessage(sessionID string, loading bool) Message {
	return newMessage(MessageTypeLoading, sessionID, LoadingState{IsLoading: loading})
}

func NewProgressMessage(sessionID string, progress int, phrase string) Message {
	return newMessage(MessageTypeProgress, sessionID, ProgressUpdate{Progress: progress, Phrase: phrase})
}

func NewToastMessage(sessionID string, level string, title string, text string) Message {
	return newMessage(MessageTypeToast, sessionID, Toast{Level: level, Title: title, Message: text})
}

func NewConfirmRequestMessage(sessionID string, id string, text string) Message {
	return newMessage(MessageTypeConfirmRequest, sessionID, ConfirmRequest{ID: id, Message: text})
}

func NewErrorMessage(sessionID string, text string) Message {
	return newMessage(MessageTypeError, sessionID, Toast{Level: "error", Title: text})
}
