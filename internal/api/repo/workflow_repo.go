package repo

import (
	"askai"
	"askai/internal/api/models"

	"gorm.io/gorm"
)

type WorkflowRepository struct {
	Db *gorm.DB
}

func NewWorkflowRepository() *WorkflowRepository {
	return &WorkflowRepository{Db: askai.DB}
}

func (r *WorkflowRepository) FindByID(id uint) (models.Workflow, error) {
	var workflow models.Workflow
	err := r.Db.
		Preload("Nodes").
		Preload("Connections").
		First(&workflow, id).Error
	return workflow, err
}

func (r *WorkflowRepository) Create(workflow *models.Workflow) error {
	return r.Db.Create(workflow).Error
}

func (r *WorkflowRepository) Update(workflow *models.Workflow) error {
	return r.Db.Save(workflow).Error
}

func (r *WorkflowRepository) UpdatePinData(id uint, pinData models.PinData) error {
	return r.Db.Model(&models.Workflow{}).
		Where("id = ?", id).
		Update("pin_data", pinData).Error
}

func (r *WorkflowRepository) Delete(id uint) error {
	return r.Db.Delete(&models.Workflow{}, id).Error
}
