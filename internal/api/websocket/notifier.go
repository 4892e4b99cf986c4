package websocket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// confirmTimeout bounds how long a generation waits for the user to answer a
// confirmation dialog; no answer counts as a cancel.
const confirmTimeout = 30 * time.Second

// EditorNotifier adapts the hub to the ask service: it is both the outbound
// notification channel and the blocking confirmation dialog.
type EditorNotifier struct {
	hub *Hub
}

func NewEditorNotifier(hub *Hub) *EditorNotifier {
	return &EditorNotifier{hub: hub}
}

func (slf *EditorNotifier) ReplaceCode(sessionID string, code string) {
	slf.hub.Send(NewCodeReplaceMessage(sessionID, code))
}

func (slf *EditorNotifier) Loading(sessionID string, loading bool) {
	slf.hub.Send(NewLoadingMessage(sessionID, loading))
}

func (slf *EditorNotifier) Progress(sessionID string, progress int, phrase string) {
	slf.hub.Send(NewProgressMessage(sessionID, progress, phrase))
}

func (slf *EditorNotifier) Toast(sessionID string, level string, title string, message string) {
	slf.hub.Send(NewToastMessage(sessionID, level, title, message))
}

// Confirm sends a dialog request to the session and blocks until the editor
// answers, the context is cancelled or the timeout fires.
func (slf *EditorNotifier) Confirm(ctx context.Context, sessionID string, message string) (bool, error) {
	id := uuid.NewString()
	reply := slf.hub.RegisterConfirm(id)
	slf.hub.Send(NewConfirmRequestMessage(sessionID, id, message))

	select {
	case confirmed := <-reply:
		return confirmed, nil
	case <-ctx.Done():
		slf.hub.CancelConfirm(id)
		return false, ctx.Err()
	case <-time.After(confirmTimeout):
		slf.hub.CancelConfirm(id)
		return false, fmt.Errorf("confirmation timed out")
	}
}
