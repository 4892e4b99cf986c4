package endpoints

import (
	"askai"
	"askai/internal/api/handler/middleware"
	"askai/internal/api/handler/request"
	"askai/internal/api/handler/response"
	"askai/internal/api/models"
	"askai/internal/api/service"
	"askai/pkg"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type workflowHandler struct {
	logger          zerolog.Logger
	config          askai.AppConfig
	workflowService *service.WorkflowService
	runDataService  *service.RunDataService
}

func newWorkflowHandler() *workflowHandler {
	return &workflowHandler{
		logger:          askai.Logger,
		config:          askai.GetConfig(),
		workflowService: service.NewWorkflowService(),
		runDataService:  service.NewRunDataService(),
	}
}

func WorkflowHandler(router *graceful.Graceful) {
	h := newWorkflowHandler()

	routes := router.Group("/api/v1/workflows")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("", h.create)
		routes.GET("/:id", h.get)
		routes.PUT("/:id", h.update)
		routes.DELETE("/:id", h.delete)
		routes.POST("/:id/rundata", h.storeRunData)
		routes.PUT("/:id/pin/:nodeName", h.pinSample)
		routes.DELETE("/:id/pin/:nodeName", h.unpinSample)
	}
}

func (slf *workflowHandler) create(c *gin.Context) {
	var req request.CreateWorkflowRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse create workflow request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	workflow := models.Workflow{
		Name:   req.Name,
		Active: req.Active,
	}
	for _, n := range req.Nodes {
		workflow.Nodes = append(workflow.Nodes, models.Node{
			Name:       n.Name,
			Type:       models.NodeType(n.Type),
			Xpos:       n.Xpos,
			Ypos:       n.Ypos,
			Parameters: models.NodeData(n.Parameters),
		})
	}
	for _, conn := range req.Connections {
		workflow.Connections = append(workflow.Connections, models.Connection{
			SourceName: conn.SourceName,
			TargetName: conn.TargetName,
		})
	}

	created, err := slf.workflowService.Create(workflow)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to create workflow")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (slf *workflowHandler) get(c *gin.Context) {
	id, ok := slf.workflowID(c)
	if !ok {
		return
	}

	workflow, err := slf.workflowService.FindByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, workflow)
}

func (slf *workflowHandler) update(c *gin.Context) {
	id, ok := slf.workflowID(c)
	if !ok {
		return
	}

	var req request.UpdateWorkflowRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse update workflow request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	workflow, err := slf.workflowService.FindByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	workflow.Name = req.Name
	workflow.Active = req.Active
	if err := slf.workflowService.Update(workflow); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to update workflow")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, workflow)
}

func (slf *workflowHandler) delete(c *gin.Context) {
	id, ok := slf.workflowID(c)
	if !ok {
		return
	}

	if err := slf.workflowService.Delete(id); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to delete workflow")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *workflowHandler) storeRunData(c *gin.Context) {
	id, ok := slf.workflowID(c)
	if !ok {
		return
	}

	var req request.StoreRunDataRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse run data request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	if err := slf.runDataService.Store(id, models.RunData(req.RunData)); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to store run data")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *workflowHandler) pinSample(c *gin.Context) {
	id, ok := slf.workflowID(c)
	if !ok {
		return
	}

	var req request.PinSampleRequest
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse pin sample request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	if err := slf.workflowService.PinSample(id, c.Param("nodeName"), req.Sample); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to pin sample")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *workflowHandler) unpinSample(c *gin.Context) {
	id, ok := slf.workflowID(c)
	if !ok {
		return
	}

	if err := slf.workflowService.UnpinSample(id, c.Param("nodeName")); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to unpin sample")
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *workflowHandler) workflowID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "invalid workflow id"})
		return 0, false
	}
	return uint(id), true
}
