package service

import (
	"askai"
	"askai/pkg"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DraftService mirrors the prompt text a user is typing for a node into a
// session-scoped slot, so the draft survives the editor being closed and
// reopened within the same session.
type DraftService struct {
	logger zerolog.Logger
	config askai.AppConfig
}

func NewDraftService() *DraftService {
	return &DraftService{
		logger: askai.Logger,
		config: askai.GetConfig(),
	}
}

// NormalizeDraftKey lowercases and snake-cases a node display name. There is
// no collision resolution beyond this transform; two names that normalize to
// the same slug share a slot.
func NormalizeDraftKey(nodeName string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(nodeName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func draftKey(sessionID string, nodeName string) string {
	return fmt.Sprintf("session:%s:ask:draft:%s", sessionID, NormalizeDraftKey(nodeName))
}

// Save stores the current prompt text for a node. Prompts over the configured
// maximum are rejected.
func (slf *DraftService) Save(sessionID string, nodeName string, prompt string) error {
	if len([]rune(prompt)) > slf.config.Ask.MaxPromptLength {
		return fmt.Errorf("prompt exceeds %d characters", slf.config.Ask.MaxPromptLength)
	}
	if err := pkg.RedisSetString(draftKey(sessionID, nodeName), prompt, slf.config.Ask.SessionTTL); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load restores the stored prompt text for a node, empty when none was saved.
func (slf *DraftService) Load(sessionID string, nodeName string) (string, error) {
	prompt, err := pkg.RedisGetString(draftKey(sessionID, nodeName))
	if err != nil {
		if pkg.IsRedisNil(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load draft: %w", err)
	}
	return prompt, nil
}
