package formats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/model"
	"github.com/aokana/reportform/internal/repository"
	"github.com/aokana/reportform/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.Project{},
		&model.Question{},
		&model.TextField{},
		&model.TextArea{},
		&model.DateField{},
		&model.RadioButton{},
		&model.CheckBox{},
		&model.Select{},
		&model.OptionString{},
	))

	formatService := service.NewReportFormatService(
		repository.NewProjectRepository(db),
		repository.NewQuestionRepository(db),
	)
	controller := NewReportFormatController(formatService)

	router := gin.New()
	format := router.Group("/api/v1/projects/:project_id/report-format")
	format.GET("", controller.GetReportFormat)
	format.GET("/new", controller.NewFieldDefaults)
	format.GET("/preview", controller.SwitchFieldType)
	format.POST("/questions", controller.CreateField)
	format.PATCH("/questions", controller.UpdateFields)
	format.DELETE("/questions/:question_id", controller.DeleteField)
	return router, db
}

func seedProject(t *testing.T, db *gorm.DB) *model.Project {
	t.Helper()
	project := model.Project{Name: "weekly report"}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func TestSwitchFieldTypeEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	seedProject(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/1/report-format/preview?form_type=radio_button", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var preview dto.FieldPreviewDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.Equal(t, "radio_button", preview.FormTableType)
	assert.Equal(t, 1, preview.Position)
	require.Len(t, preview.Field.OptionStrings, 1)
	assert.Empty(t, preview.Field.OptionStrings[0].OptionString)
}

func TestSwitchFieldTypeEndpointRejectsUnknownType(t *testing.T) {
	router, db := newTestRouter(t)
	seedProject(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/1/report-format/preview?form_type=color_picker", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFieldEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	seedProject(t, db)

	body := `{
		"form_table_type": "select",
		"position": 1,
		"select_attributes": {
			"label_name": "department",
			"field_type": "required",
			"select_option_strings_attributes": [
				{"option_string": "sales"},
				{"option_string": "engineering"}
			]
		}
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/1/report-format/questions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.QuestionCreatedDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "select", created.Question.FormTableType)
	assert.Equal(t, "department", created.Question.LabelName)
	require.Len(t, created.Question.OptionStrings, 2)
	assert.Equal(t, "sales", created.Question.OptionStrings[0].OptionString)
}

func TestDeleteFieldEndpointNotFound(t *testing.T) {
	router, db := newTestRouter(t)
	seedProject(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/projects/1/report-format/questions/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReportFormatProjectNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/99/report-format", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
