package repository

import (
	"github.com/aokana/reportform/internal/model"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(project *model.Project) error
	FindByID(id uint) (*model.Project, error)
	FindByIDWithLeader(id uint) (*model.Project, error)
	FindAllWithQuestionCount() ([]struct {
		model.Project
		QuestionCount int
	}, error)
	ExistsWithLeader(userID uint) (bool, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) FindByID(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByIDWithLeader(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.Preload("Leader").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindAllWithQuestionCount() ([]struct {
	model.Project
	QuestionCount int
}, error) {
	var results []struct {
		model.Project
		QuestionCount int
	}
	err := r.db.Model(&model.Project{}).
		Select("projects.*, (SELECT COUNT(*) FROM questions WHERE questions.project_id = projects.id) as question_count").
		Where("projects.deleted_at IS NULL").
		Order("projects.created_at DESC").
		Scan(&results).Error
	return results, err
}

// ExistsWithLeader reports whether any project has the user as its leader.
func (r *projectRepository) ExistsWithLeader(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Project{}).
		Where("leader_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
