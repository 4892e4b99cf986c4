package service

import (
	"askai"
	"askai/internal/api/models"
	"askai/internal/ask"
	"askai/pkg"
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// EditorNotifier pushes generation feedback to the editing session: code
// replacement, loading start/stop, time-based progress and toasts.
type EditorNotifier interface {
	ReplaceCode(sessionID string, code string)
	Loading(sessionID string, loading bool)
	Progress(sessionID string, progress int, phrase string)
	Toast(sessionID string, level string, title string, message string)
}

// Confirmer asks the user a blocking yes/no question and reports the answer.
type Confirmer interface {
	Confirm(ctx context.Context, sessionID string, message string) (bool, error)
}

// CodeGenerator is the remote generation service.
type CodeGenerator interface {
	GenerateCode(ctx context.Context, payload pkg.CodegenPayload) (pkg.GenerationResult, error)
}

// Telemetry records fire-and-forget usage events.
type Telemetry interface {
	Track(sessionID string, name string, payload map[string]any)
}

// WorkflowStore resolves workflows and their upstream graph.
type WorkflowStore interface {
	FindByID(id uint) (*models.Workflow, error)
	ParentNodes(workflow *models.Workflow, nodeName string) []models.Node
}

// SampleStore resolves the sample data available for a node.
type SampleStore interface {
	NodeSample(workflow *models.Workflow, nodeName string) json.RawMessage
}

// GenerateOutcome is how a submission ended. Failures are delivered to the
// user as toasts; the outcome only tells the HTTP layer what happened.
type GenerateOutcome string

const (
	OutcomeCompleted GenerateOutcome = "completed"
	OutcomeFailed    GenerateOutcome = "failed"
	OutcomeCancelled GenerateOutcome = "cancelled"
	OutcomeSkipped   GenerateOutcome = "skipped"
)

const confirmReplaceMessage = "Generating code will replace the code in this node. Continue?"

type GenerateInput struct {
	WorkflowID     uint
	NodeName       string
	SessionID      string
	Prompt         string
	HasChangedCode bool
}

// SubmitCheck is the verdict of the submit-enablement predicate.
type SubmitCheck struct {
	CanSubmit bool   `json:"canSubmit"`
	Reason    string `json:"reason,omitempty"`
}

type AskService struct {
	logger    zerolog.Logger
	config    askai.AppConfig
	workflows WorkflowStore
	runData   SampleStore
	notifier  EditorNotifier
	confirmer Confirmer
	generator CodeGenerator
	telemetry Telemetry

	mu      sync.Mutex
	loaders map[string]*ask.Loader
}

func NewAskService(config askai.AppConfig, workflows WorkflowStore, runData SampleStore, notifier EditorNotifier, confirmer Confirmer, generator CodeGenerator, telemetry Telemetry) *AskService {
	return &AskService{
		logger:    askai.Logger,
		config:    config,
		workflows: workflows,
		runData:   runData,
		notifier:  notifier,
		confirmer: confirmer,
		generator: generator,
		telemetry: telemetry,
		loaders:   make(map[string]*ask.Loader),
	}
}

// CanSubmit is the pure submit-enablement predicate: prompt length within
// bounds, input data present, execution mode supported and no generation in
// flight. Recomputed from current state on every relevant event.
func CanSubmit(config askai.AppConfig, prompt string, mode models.ExecutionMode, hasPrimarySchema bool, loading bool) SubmitCheck {
	length := len([]rune(prompt))
	switch {
	case loading:
		return SubmitCheck{Reason: "generation in flight"}
	case mode == models.ModeEachItem:
		return SubmitCheck{Reason: "once-per-item mode is not supported"}
	case !hasPrimarySchema:
		return SubmitCheck{Reason: "no input data available"}
	case length < config.Ask.MinPromptLength:
		return SubmitCheck{Reason: "prompt too short"}
	case length > config.Ask.MaxPromptLength:
		return SubmitCheck{Reason: "prompt too long"}
	default:
		return SubmitCheck{CanSubmit: true}
	}
}

// SubmitState resolves the current workflow state and evaluates CanSubmit for
// the given node and prompt.
func (slf *AskService) SubmitState(workflowID uint, nodeName string, sessionID string, prompt string) (SubmitCheck, error) {
	workflow, err := slf.workflows.FindByID(workflowID)
	if err != nil {
		return SubmitCheck{}, err
	}
	node := workflow.NodeByName(nodeName)
	if node == nil {
		return SubmitCheck{Reason: "node not found"}, nil
	}

	primary, _ := slf.collectSchemas(workflow, nodeName)
	return CanSubmit(slf.config, prompt, node.Mode(), primary != nil, slf.Loading(sessionID)), nil
}

// Loading reports whether the session has a generation in flight.
func (slf *AskService) Loading(sessionID string) bool {
	slf.mu.Lock()
	loader := slf.loaders[sessionID]
	slf.mu.Unlock()
	return loader != nil && loader.Loading()
}

// Generate runs one prompt-to-code submission end to end. Nothing escapes as
// an error towards the user: every failure path terminates in a toast, a
// telemetry event and the loading teardown. A missing workflow or node is a
// silent no-op since the editor should never offer submission in that state.
func (slf *AskService) Generate(ctx context.Context, input GenerateInput) GenerateOutcome {
	workflow, err := slf.workflows.FindByID(input.WorkflowID)
	if err != nil {
		slf.logger.Warn().Err(err).Uint("workflowId", input.WorkflowID).Msg("Generate called for unknown workflow")
		return OutcomeSkipped
	}
	if workflow.NodeByName(input.NodeName) == nil {
		slf.logger.Warn().Str("node", input.NodeName).Msg("Generate called for unknown node")
		return OutcomeSkipped
	}

	slf.telemetry.Track(input.SessionID, ask.EventGenerateClicked, map[string]any{
		"prompt": input.Prompt,
	})

	if input.HasChangedCode {
		confirmed, err := slf.confirmer.Confirm(ctx, input.SessionID, confirmReplaceMessage)
		if err != nil || !confirmed {
			return OutcomeCancelled
		}
	}

	var loader *ask.Loader
	loader = ask.NewLoader(
		func(progress int, phraseIndex int) {
			slf.notifier.Progress(input.SessionID, progress, ask.Phrases[phraseIndex])
		},
		func() {
			slf.mu.Lock()
			// a newer submission may have installed its own loader already
			if slf.loaders[input.SessionID] == loader {
				delete(slf.loaders, input.SessionID)
			}
			slf.mu.Unlock()
			slf.notifier.Loading(input.SessionID, false)
		},
	)
	slf.mu.Lock()
	slf.loaders[input.SessionID] = loader
	slf.mu.Unlock()

	slf.notifier.Loading(input.SessionID, true)
	loader.Start()

	model := slf.config.Codegen.ModelControl
	if ask.AssignVariant(input.SessionID, ask.ModelExperiment) == ask.VariantTreatment {
		model = slf.config.Codegen.ModelVariant
	}

	primary, auxiliary := slf.collectSchemas(workflow, input.NodeName)
	payload := pkg.CodegenPayload{
		Question: input.Prompt,
		Context: pkg.CodegenContext{
			InputSchema: schemaOrNil(primary),
			Schemas:     auxiliary,
		},
		Model:   model,
		Version: askai.Version,
	}

	result, err := slf.generator.GenerateCode(ctx, payload)
	if err != nil {
		message := ask.ClassifyError(err)
		slf.logger.Error().Err(err).Int("status", ask.StatusOf(err)).Msg("Code generation failed")
		loader.Complete()
		slf.notifier.Toast(input.SessionID, "error", "Generation failed", message)
		slf.telemetry.Track(input.SessionID, ask.EventGenerateFinished, map[string]any{
			"success": false,
			"error":   message,
		})
		return OutcomeFailed
	}

	loader.Complete()
	slf.notifier.ReplaceCode(input.SessionID, result.Code)
	slf.notifier.Toast(input.SessionID, "success", "Code updated", "Code generation completed")

	finished := map[string]any{"success": true}
	if result.Tokens != nil {
		finished["tokens"] = *result.Tokens
	}
	slf.telemetry.Track(input.SessionID, ask.EventGenerateFinished, finished)

	return OutcomeCompleted
}

// collectSchemas infers a schema per ancestor with sample data, in traversal
// order, dropping ancestors with no sample or an empty schema. The first
// schema found is the primary input schema, the rest is auxiliary context.
func (slf *AskService) collectSchemas(workflow *models.Workflow, nodeName string) (*ask.Schema, []pkg.NodeSchema) {
	var primary *ask.Schema
	var auxiliary []pkg.NodeSchema

	for _, parent := range slf.workflows.ParentNodes(workflow, nodeName) {
		sample := slf.runData.NodeSample(workflow, parent.Name)
		if sample == nil {
			continue
		}
		schema := ask.InferSchemaJSON(sample, true)
		if schema.Empty() {
			continue
		}
		if primary == nil {
			primary = schema
			continue
		}
		auxiliary = append(auxiliary, pkg.NodeSchema{NodeName: parent.Name, Schema: schema})
	}

	return primary, auxiliary
}

// schemaOrNil keeps a typed nil schema from leaking into the JSON payload as
// a non-null interface value.
func schemaOrNil(schema *ask.Schema) any {
	if schema == nil {
		return nil
	}
	return schema
}
