package formats

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

// ReportFormatController exposes the form builder: create, edit, reorder and
// delete field definitions within a project's report format.
type ReportFormatController struct {
	formatService service.ReportFormatService
}

func NewReportFormatController(formatService service.ReportFormatService) *ReportFormatController {
	return &ReportFormatController{formatService: formatService}
}

// GetReportFormat godoc
// @Summary Get a project's report format
// @Description Returns every field definition of the project ordered by position, for the edit view.
// @Tags Report Formats
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} dto.ReportFormatDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid project ID format"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{project_id}/report-format [get]
func (c *ReportFormatController) GetReportFormat(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		return
	}
	format, err := c.formatService.GetReportFormat(projectID)
	if err != nil {
		respondError(ctx, err, "Failed to retrieve report format")
		return
	}
	ctx.JSON(http.StatusOK, format)
}

// NewFieldDefaults godoc
// @Summary Defaults for the new-field modal
// @Description Returns the position the new field would occupy and an empty text-field shell.
// @Tags Report Formats
// @Produce json
// @Param project_id path int true "Project ID"
// @Success 200 {object} dto.NewFieldDefaultsDTO
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{project_id}/report-format/new [get]
func (c *ReportFormatController) NewFieldDefaults(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		return
	}
	defaults, err := c.formatService.PrepareNewFieldDefaults(projectID)
	if err != nil {
		respondError(ctx, err, "Failed to prepare new field defaults")
		return
	}
	ctx.JSON(http.StatusOK, defaults)
}

// SwitchFieldType godoc
// @Summary Preview shell for a requested field type
// @Description Swaps the modal's sub-form: returns an unsaved shell of the requested variant, choice types seeded with one blank option.
// @Tags Report Formats
// @Produce json
// @Param project_id path int true "Project ID"
// @Param form_type query string true "Requested field type" Enums(text_field, text_area, date_field, radio_button, check_box, select)
// @Success 200 {object} dto.FieldPreviewDTO
// @Failure 400 {object} dto.ErrorResponse "Unsupported form type"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{project_id}/report-format/preview [get]
func (c *ReportFormatController) SwitchFieldType(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		return
	}
	preview, err := c.formatService.SwitchFieldTypePreview(projectID, ctx.Query("form_type"))
	if err != nil {
		respondError(ctx, err, "Failed to build field preview")
		return
	}
	ctx.JSON(http.StatusOK, preview)
}

// CreateField godoc
// @Summary Register a new input form field
// @Description Adds one field definition with the sub-record matching its form_table_type.
// @Tags Report Formats
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param question body dto.QuestionCreateDTO true "Field definition"
// @Success 201 {object} dto.QuestionCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{project_id}/report-format/questions [post]
func (c *ReportFormatController) CreateField(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateField: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.formatService.CreateField(projectID, req)
	if err != nil {
		respondError(ctx, err, "Failed to register the input form")
		return
	}
	ctx.JSON(http.StatusCreated, dto.QuestionCreatedDTO{
		Message:  "The input form has been registered",
		Question: *question,
	})
}

// UpdateFields godoc
// @Summary Batch-update field definitions
// @Description Applies each entry independently and reports a per-question outcome list; one failing entry never blocks the others.
// @Tags Report Formats
// @Accept json
// @Produce json
// @Param project_id path int true "Project ID"
// @Param batch body dto.QuestionBatchUpdateDTO true "Mapping from question id to partial attributes"
// @Success 200 {object} dto.BatchUpdateReportDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{project_id}/report-format/questions [patch]
func (c *ReportFormatController) UpdateFields(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		return
	}
	var req dto.QuestionBatchUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateFields: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	report, err := c.formatService.UpdateFields(projectID, req)
	if err != nil {
		respondError(ctx, err, "Failed to update report format fields")
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// DeleteField godoc
// @Summary Delete an input form field
// @Description Destroys the question together with its sub-record and option strings. Remaining positions are not renumbered.
// @Tags Report Formats
// @Produce json
// @Param project_id path int true "Project ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "Question not found in project"
// @Router /projects/{project_id}/report-format/questions/{question_id} [delete]
func (c *ReportFormatController) DeleteField(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.formatService.DeleteField(projectID, questionID); err != nil {
		respondError(ctx, err, "Failed to delete the input form")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "The input form has been deleted"})
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// respondError translates service errors to HTTP statuses: missing records
// to 404, validation and type errors to 400.
func respondError(ctx *gin.Context, err error, message string) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidFieldType):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: validationErr.Messages})
	default:
		log.Error().Err(err).Msg(message)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	}
}
