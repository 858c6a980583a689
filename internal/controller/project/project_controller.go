package project

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/service"
)

type ProjectController struct {
	projectService service.ProjectService
}

func NewProjectController(projectService service.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// CreateProject godoc
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body dto.ProjectCreateDTO true "Project data"
// @Success 201 {object} dto.ProjectResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.ProjectCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateProject: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	project, err := c.projectService.CreateProject(req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("CreateProject: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create project", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, project)
}

// GetAllProjects godoc
// @Summary List projects
// @Description Lists projects with the number of configured report format fields.
// @Tags Projects
// @Produce json
// @Success 200 {array} dto.ProjectSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects [get]
func (c *ProjectController) GetAllProjects(ctx *gin.Context) {
	projects, err := c.projectService.GetAllProjects()
	if err != nil {
		log.Error().Err(err).Msg("GetAllProjects: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve projects", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} dto.ProjectResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid project ID format"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{project_id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	raw := ctx.Param("project_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid project_id format"})
		return
	}
	project, err := c.projectService.GetProject(uint(id))
	if err != nil {
		log.Warn().Err(err).Uint64("projectID", id).Msg("GetProject: Project not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, project)
}
