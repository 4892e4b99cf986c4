package service

import (
	"askai"
	"askai/internal/api/models"
	"askai/pkg"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const runDataTTL = 6 * time.Hour

// RunDataService caches the latest execution output of a workflow so the
// editor can offer data-shape context without re-running anything.
type RunDataService struct {
	logger zerolog.Logger
}

func NewRunDataService() *RunDataService {
	return &RunDataService{logger: askai.Logger}
}

func runDataKey(workflowID uint) string {
	return fmt.Sprintf("workflow:%d:rundata", workflowID)
}

// Store replaces the cached run data for a workflow.
func (slf *RunDataService) Store(workflowID uint, data models.RunData) error {
	if err := pkg.RedisSet(runDataKey(workflowID), data, runDataTTL); err != nil {
		return fmt.Errorf("failed to cache run data for workflow %d: %w", workflowID, err)
	}
	return nil
}

// Latest returns the cached run data, or an empty map when no execution has
// been recorded yet.
func (slf *RunDataService) Latest(workflowID uint) (models.RunData, error) {
	var data models.RunData
	if err := pkg.RedisGet(runDataKey(workflowID), &data); err != nil {
		if pkg.IsRedisNil(err) {
			return models.RunData{}, nil
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}
	return data, nil
}

// NodeSample returns the sample data available for a node: the pinned sample
// when one exists, the latest execution output otherwise, nil when neither is
// present.
func (slf *RunDataService) NodeSample(workflow *models.Workflow, nodeName string) json.RawMessage {
	if pinned := workflow.PinnedSample(nodeName); pinned != nil {
		return pinned
	}

	data, err := slf.Latest(workflow.ID)
	if err != nil {
		slf.logger.Warn().Err(err).Uint("workflowId", workflow.ID).Msg("Failed to load run data, treating node as sampleless")
		return nil
	}
	return data[nodeName]
}
