package service

import (
	"askai"
	"askai/internal/api/models"
	"askai/internal/api/repo"
	"fmt"

	"github.com/rs/zerolog"
)

type WorkflowService struct {
	logger zerolog.Logger
	repo   *repo.WorkflowRepository
}

func NewWorkflowService() *WorkflowService {
	return &WorkflowService{
		logger: askai.Logger,
		repo:   repo.NewWorkflowRepository(),
	}
}

func (slf *WorkflowService) FindByID(id uint) (*models.Workflow, error) {
	workflow, err := slf.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("workflow %d not found: %w", id, err)
	}
	return &workflow, nil
}

func (slf *WorkflowService) Create(workflow models.Workflow) (*models.Workflow, error) {
	if err := slf.repo.Create(&workflow); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}
	return &workflow, nil
}

func (slf *WorkflowService) Update(workflow *models.Workflow) error {
	return slf.repo.Update(workflow)
}

func (slf *WorkflowService) Delete(id uint) error {
	return slf.repo.Delete(id)
}

// PinSample attaches a fixed sample to a node. Pinned samples shadow live
// execution output during schema extraction.
func (slf *WorkflowService) PinSample(workflowID uint, nodeName string, sample []byte) error {
	workflow, err := slf.repo.FindByID(workflowID)
	if err != nil {
		return fmt.Errorf("workflow %d not found: %w", workflowID, err)
	}
	if workflow.NodeByName(nodeName) == nil {
		return fmt.Errorf("node %q not found in workflow %d", nodeName, workflowID)
	}
	if workflow.PinData == nil {
		workflow.PinData = models.PinData{}
	}
	workflow.PinData[nodeName] = sample
	return slf.repo.UpdatePinData(workflowID, workflow.PinData)
}

// UnpinSample removes a node's pinned sample.
func (slf *WorkflowService) UnpinSample(workflowID uint, nodeName string) error {
	workflow, err := slf.repo.FindByID(workflowID)
	if err != nil {
		return fmt.Errorf("workflow %d not found: %w", workflowID, err)
	}
	if workflow.PinData == nil {
		return nil
	}
	delete(workflow.PinData, nodeName)
	return slf.repo.UpdatePinData(workflowID, workflow.PinData)
}

// ParentNodes walks the workflow graph upstream from the given node and
// returns its ancestors ordered by increasing depth. Duplicate names are
// dropped (first occurrence wins) and the node itself is never included, so
// diamond-shaped graphs and cycles are safe.
func (slf *WorkflowService) ParentNodes(workflow *models.Workflow, nodeName string) []models.Node {
	seen := map[string]bool{nodeName: true}
	var ordered []models.Node

	frontier := []string{nodeName}
	for len(frontier) > 0 {
		var next []string
		for _, name := range frontier {
			for _, source := range workflow.SourcesOf(name) {
				if seen[source] {
					continue
				}
				seen[source] = true
				if node := workflow.NodeByName(source); node != nil {
					ordered = append(ordered, *node)
				}
				next = append(next, source)
			}
		}
		frontier = next
	}

	return ordered
}
