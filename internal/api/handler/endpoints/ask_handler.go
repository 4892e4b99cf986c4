package endpoints

import (
	"askai"
	"askai/internal/api/handler/middleware"
	"askai/internal/api/handler/request"
	"askai/internal/api/handler/response"
	"askai/internal/api/service"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"askai/pkg"
)

type askHandler struct {
	logger       zerolog.Logger
	config       askai.AppConfig
	askService   *service.AskService
	draftService *service.DraftService
}

func newAskHandler(askService *service.AskService) *askHandler {
	return &askHandler{
		logger:       askai.Logger,
		config:       askai.GetConfig(),
		askService:   askService,
		draftService: service.NewDraftService(),
	}
}

func AskHandler(router *graceful.Graceful, askService *service.AskService) {
	h := newAskHandler(askService)

	routes := router.Group("/api/v1/ask")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("/generate", h.generate)
		routes.POST("/check", h.check)
		routes.GET("/draft", h.loadDraft)
		routes.PUT("/draft", h.saveDraft)
	}
}

func (slf *askHandler) generate(c *gin.Context) {
	var req request.GenerateRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse generate request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	// Failures surface to the user as toasts over the session socket; the
	// HTTP answer only reports how the submission ended.
	outcome := slf.askService.Generate(c.Request.Context(), service.GenerateInput{
		WorkflowID:     req.WorkflowID,
		NodeName:       req.NodeName,
		SessionID:      req.SessionID,
		Prompt:         req.Prompt,
		HasChangedCode: req.HasChangedCode,
	})

	c.JSON(http.StatusOK, response.GenerateResponse{Status: string(outcome)})
}

func (slf *askHandler) check(c *gin.Context) {
	var req request.SubmitCheckRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse submit check request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	check, err := slf.askService.SubmitState(req.WorkflowID, req.NodeName, req.SessionID, req.Prompt)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to evaluate submit state")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.SubmitCheckResponse{CanSubmit: check.CanSubmit, Reason: check.Reason})
}

func (slf *askHandler) loadDraft(c *gin.Context) {
	sessionID := c.Query("sessionId")
	nodeName := c.Query("nodeName")
	if sessionID == "" || nodeName == "" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "sessionId and nodeName are required"})
		return
	}

	prompt, err := slf.draftService.Load(sessionID, nodeName)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to load draft")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.DraftResponse{Prompt: prompt})
}

func (slf *askHandler) saveDraft(c *gin.Context) {
	var req request.SaveDraftRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse save draft request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	if err := slf.draftService.Save(req.SessionID, req.NodeName, req.Prompt); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to save draft")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
