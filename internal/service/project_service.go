package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/model"
	"github.com/aokana/reportform/internal/repository"
)

type ProjectService interface {
	CreateProject(req dto.ProjectCreateDTO) (*dto.ProjectResponseDTO, error)
	GetAllProjects() ([]dto.ProjectSummaryDTO, error)
	GetProject(projectID uint) (*dto.ProjectResponseDTO, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) ProjectService {
	return &projectService{projectRepo: projectRepo, userRepo: userRepo}
}

func (s *projectService) CreateProject(req dto.ProjectCreateDTO) (*dto.ProjectResponseDTO, error) {
	if req.LeaderID != nil {
		if _, err := s.userRepo.FindByID(*req.LeaderID); err != nil {
			return nil, fmt.Errorf("leader not found with ID %d: %w", *req.LeaderID, err)
		}
	}
	project := model.Project{
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    req.LeaderID,
	}
	if err := s.projectRepo.Create(&project); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create project")
		return nil, fmt.Errorf("database error creating project: %w", err)
	}
	return s.GetProject(project.ID)
}

func (s *projectService) GetAllProjects() ([]dto.ProjectSummaryDTO, error) {
	projectsWithCount, err := s.projectRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get projects with question count from repository")
		return nil, fmt.Errorf("error fetching projects: %w", err)
	}

	var dtos []dto.ProjectSummaryDTO
	for _, pwc := range projectsWithCount {
		dtos = append(dtos, dto.ProjectSummaryDTO{
			ID:            pwc.Project.ID,
			Name:          pwc.Project.Name,
			Description:   pwc.Project.Description,
			LeaderID:      pwc.Project.LeaderID,
			QuestionCount: pwc.QuestionCount,
			CreatedAt:     pwc.Project.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *projectService) GetProject(projectID uint) (*dto.ProjectResponseDTO, error) {
	project, err := s.projectRepo.FindByIDWithLeader(projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found with ID %d: %w", projectID, err)
	}
	var resp dto.ProjectResponseDTO
	if err := copier.Copy(&resp, project); err != nil {
		log.Error().Err(err).Msg("Failed to copy Project model to ProjectResponseDTO")
		return nil, fmt.Errorf("error preparing project response: %w", err)
	}
	return &resp, nil
}
