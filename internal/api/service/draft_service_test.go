package service

import (
	"askai"
	"askai/pkg"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDraftTest(t *testing.T) {
	askai.InitConfig("../../../.env.test")
}

func uniqueSession() string {
	return fmt.Sprintf("test-session-%d", time.Now().UnixNano())
}

func cleanupDraft(t *testing.T, sessionID string, nodeName string) {
	pkg.RedisDelete(draftKey(sessionID, nodeName))
}

// ============ Key Normalization Tests ============

func TestNormalizeDraftKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces to underscores", "My Node 1", "my_node_1"},
		{"already normalized", "my_node", "my_node"},
		{"punctuation collapsed", "HTTP Request (copy)", "http_request_copy"},
		{"consecutive separators", "A  --  B", "a_b"},
		{"leading separators dropped", "  Edit Fields", "edit_fields"},
		{"trailing separators dropped", "Code!", "code"},
		{"unicode stripped", "Nœud Café", "n_ud_caf"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDraftKey(tt.input))
		})
	}
}

// ============ Save/Load Tests ============

func TestDraft_SaveAndLoad(t *testing.T) {
	setupDraftTest(t)

	service := NewDraftService()
	sessionID := uniqueSession()
	defer cleanupDraft(t, sessionID, "My Node 1")

	err := service.Save(sessionID, "My Node 1", "sum the price field across all items")
	require.NoError(t, err, "Failed to save draft")

	prompt, err := service.Load(sessionID, "My Node 1")
	require.NoError(t, err, "Failed to load draft")
	assert.Equal(t, "sum the price field across all items", prompt)
}

func TestDraft_LoadMissingReturnsEmpty(t *testing.T) {
	setupDraftTest(t)

	service := NewDraftService()

	prompt, err := service.Load(uniqueSession(), "Never Saved")
	require.NoError(t, err)
	assert.Empty(t, prompt)
}

func TestDraft_OverwriteReplacesPrompt(t *testing.T) {
	setupDraftTest(t)

	service := NewDraftService()
	sessionID := uniqueSession()
	defer cleanupDraft(t, sessionID, "Code")

	require.NoError(t, service.Save(sessionID, "Code", "first attempt"))
	require.NoError(t, service.Save(sessionID, "Code", "second attempt"))

	prompt, err := service.Load(sessionID, "Code")
	require.NoError(t, err)
	assert.Equal(t, "second attempt", prompt)
}

func TestDraft_NodesAreIsolated(t *testing.T) {
	setupDraftTest(t)

	service := NewDraftService()
	sessionID := uniqueSession()
	defer cleanupDraft(t, sessionID, "Node A")
	defer cleanupDraft(t, sessionID, "Node B")

	require.NoError(t, service.Save(sessionID, "Node A", "prompt for a"))
	require.NoError(t, service.Save(sessionID, "Node B", "prompt for b"))

	promptA, err := service.Load(sessionID, "Node A")
	require.NoError(t, err)
	promptB, err := service.Load(sessionID, "Node B")
	require.NoError(t, err)

	assert.Equal(t, "prompt for a", promptA)
	assert.Equal(t, "prompt for b", promptB)
}

func TestDraft_SessionsAreIsolated(t *testing.T) {
	setupDraftTest(t)

	service := NewDraftService()
	session1 := uniqueSession()
	session2 := uniqueSession()
	defer cleanupDraft(t, session1, "Code")
	defer cleanupDraft(t, session2, "Code")

	require.NoError(t, service.Save(session1, "Code", "session one prompt"))

	prompt, err := service.Load(session2, "Code")
	require.NoError(t, err)
	assert.Empty(t, prompt, "Draft should not leak across sessions")
}

func TestDraft_RejectsOversizedPrompt(t *testing.T) {
	setupDraftTest(t)

	service := NewDraftService()
	sessionID := uniqueSession()

	oversized := strings.Repeat("a", askai.GetConfig().Ask.MaxPromptLength+1)
	err := service.Save(sessionID, "Code", oversized)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	prompt, err := service.Load(sessionID, "Code")
	require.NoError(t, err)
	assert.Empty(t, prompt, "Rejected draft should not be stored")
}
