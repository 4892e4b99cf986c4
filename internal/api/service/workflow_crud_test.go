package service

import (
	"askai"
	"askai/internal/api/models"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWorkflowTestDB(t *testing.T) {
	askai.InitConfig("../../../.env.test")

	err := askai.DB.AutoMigrate(
		&models.Workflow{},
		&models.Node{},
		&models.Connection{},
	)
	require.NoError(t, err, "Failed to migrate workflow tables")
}

func cleanupWorkflow(t *testing.T, id uint) {
	if id > 0 {
		askai.DB.Unscoped().Where("workflow_id = ?", id).Delete(&models.Node{})
		askai.DB.Unscoped().Where("workflow_id = ?", id).Delete(&models.Connection{})
		askai.DB.Unscoped().Delete(&models.Workflow{}, id)
	}
}

// ============ Workflow CRUD Tests ============

func TestWorkflow_Create_Database(t *testing.T) {
	setupWorkflowTestDB(t)

	service := NewWorkflowService()

	workflow := models.Workflow{
		Name: "ETL Pipeline",
		Nodes: []models.Node{
			{Name: "Fetch", Type: models.NodeTypeHTTP},
			{Name: "Code", Type: models.NodeTypeCode},
		},
		Connections: []models.Connection{
			{SourceName: "Fetch", TargetName: "Code"},
		},
	}

	created, err := service.Create(workflow)
	require.NoError(t, err, "Failed to create workflow")
	require.NotNil(t, created)
	require.NotZero(t, created.ID)
	defer cleanupWorkflow(t, created.ID)

	found, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ETL Pipeline", found.Name)
	assert.Len(t, found.Nodes, 2)
	assert.Len(t, found.Connections, 1)
}

func TestWorkflow_Update_Database(t *testing.T) {
	setupWorkflowTestDB(t)

	service := NewWorkflowService()

	created, err := service.Create(models.Workflow{Name: "Old Name"})
	require.NoError(t, err)
	defer cleanupWorkflow(t, created.ID)

	created.Name = "New Name"
	created.Active = true
	require.NoError(t, service.Update(created), "Failed to update workflow")

	found, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name)
	assert.True(t, found.Active)
}

func TestWorkflow_Delete_Database(t *testing.T) {
	setupWorkflowTestDB(t)

	service := NewWorkflowService()

	created, err := service.Create(models.Workflow{Name: "Delete Me"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(created.ID))

	_, err = service.FindByID(created.ID)
	require.Error(t, err, "Should not find deleted workflow")
}

func TestWorkflow_PinSample_Database(t *testing.T) {
	setupWorkflowTestDB(t)

	service := NewWorkflowService()

	created, err := service.Create(models.Workflow{
		Name:  "Pin Test",
		Nodes: []models.Node{{Name: "Fetch", Type: models.NodeTypeHTTP}},
	})
	require.NoError(t, err)
	defer cleanupWorkflow(t, created.ID)

	sample := json.RawMessage(`[{"a":1}]`)
	require.NoError(t, service.PinSample(created.ID, "Fetch", sample))

	found, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"a":1}]`, string(found.PinnedSample("Fetch")))

	require.NoError(t, service.UnpinSample(created.ID, "Fetch"))

	found, err = service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.PinnedSample("Fetch"))
}

func TestWorkflow_PinSample_UnknownNode(t *testing.T) {
	setupWorkflowTestDB(t)

	service := NewWorkflowService()

	created, err := service.Create(models.Workflow{Name: "Pin Unknown"})
	require.NoError(t, err)
	defer cleanupWorkflow(t, created.ID)

	err = service.PinSample(created.ID, "Ghost", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
