package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/model"
	"github.com/aokana/reportform/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
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
	return db
}

func newFormatService(t *testing.T) (ReportFormatService, repository.QuestionRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	questionRepo := repository.NewQuestionRepository(db)
	svc := NewReportFormatService(repository.NewProjectRepository(db), questionRepo)
	return svc, questionRepo, db
}

func seedProject(t *testing.T, db *gorm.DB) *model.Project {
	t.Helper()
	project := model.Project{Name: "weekly report"}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func ptr[T any](v T) *T { return &v }

func createTextField(t *testing.T, svc ReportFormatService, projectID uint, position int, label string) *dto.QuestionResponseDTO {
	t.Helper()
	created, err := svc.CreateField(projectID, dto.QuestionCreateDTO{
		FormTableType:       string(model.FieldTypeTextField),
		Position:            position,
		TextFieldAttributes: &dto.FieldAttributesDTO{LabelName: label, FieldType: "required"},
	})
	require.NoError(t, err)
	return created
}

func createRadioButton(t *testing.T, svc ReportFormatService, projectID uint, position int, options ...string) *dto.QuestionResponseDTO {
	t.Helper()
	attrs := dto.RadioButtonAttributesDTO{
		FieldAttributesDTO: dto.FieldAttributesDTO{LabelName: "choose one", FieldType: "required"},
	}
	for _, option := range options {
		attrs.OptionStringsAttributes = append(attrs.OptionStringsAttributes, dto.OptionStringAttributesDTO{OptionString: option})
	}
	created, err := svc.CreateField(projectID, dto.QuestionCreateDTO{
		FormTableType:         string(model.FieldTypeRadioButton),
		Position:              position,
		RadioButtonAttributes: &attrs,
	})
	require.NoError(t, err)
	return created
}

func TestSwitchFieldTypePreviewPlainTypes(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)

	for _, formType := range []string{"text_field", "text_area", "date_field"} {
		t.Run(formType, func(t *testing.T) {
			preview, err := svc.SwitchFieldTypePreview(project.ID, formType)
			require.NoError(t, err)
			assert.Equal(t, formType, preview.FormTableType)
			assert.Equal(t, 1, preview.Position)
			assert.Empty(t, preview.Field.OptionStrings)
		})
	}
}

func TestSwitchFieldTypePreviewChoiceTypes(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)

	for _, formType := range []string{"radio_button", "check_box", "select"} {
		t.Run(formType, func(t *testing.T) {
			preview, err := svc.SwitchFieldTypePreview(project.ID, formType)
			require.NoError(t, err)
			assert.Equal(t, formType, preview.FormTableType)
			require.Len(t, preview.Field.OptionStrings, 1)
			assert.Empty(t, preview.Field.OptionStrings[0].OptionString)
		})
	}
}

func TestSwitchFieldTypePreviewUnknownType(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)

	_, err := svc.SwitchFieldTypePreview(project.ID, "color_picker")
	assert.ErrorIs(t, err, ErrInvalidFieldType)
}

func TestSwitchFieldTypePreviewIncludesNextPosition(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)
	createTextField(t, svc, project.ID, 1, "title")

	preview, err := svc.SwitchFieldTypePreview(project.ID, "select")
	require.NoError(t, err)
	assert.Equal(t, 2, preview.Position)
}

func TestPrepareNewFieldDefaults(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)

	defaults, err := svc.PrepareNewFieldDefaults(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Position)
	assert.Equal(t, "text_field", defaults.FormTableType)
	assert.Empty(t, defaults.Field.OptionStrings)

	for pos := 1; pos <= 3; pos++ {
		createTextField(t, svc, project.ID, pos, fmt.Sprintf("field %d", pos))
	}
	defaults, err = svc.PrepareNewFieldDefaults(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, defaults.Position)
}

func TestPrepareNewFieldDefaultsProjectNotFound(t *testing.T) {
	svc, _, _ := newFormatService(t)
	_, err := svc.PrepareNewFieldDefaults(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateFieldRadioButtonWithOptions(t *testing.T) {
	svc, questionRepo, db := newFormatService(t)
	project := seedProject(t, db)

	created := createRadioButton(t, svc, project.ID, 1, "yes", "no")
	require.Len(t, created.OptionStrings, 2)
	assert.Equal(t, "yes", created.OptionStrings[0].OptionString)
	assert.Equal(t, "no", created.OptionStrings[1].OptionString)

	question, err := questionRepo.FindByIDInProject(project.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, question.RadioButton)
	assert.Equal(t, "choose one", question.RadioButton.LabelName)
	require.Len(t, question.RadioButton.OptionStrings, 2)
	assert.Equal(t, "yes", question.RadioButton.OptionStrings[0].OptionString)
	assert.Equal(t, "no", question.RadioButton.OptionStrings[1].OptionString)
	assert.Nil(t, question.TextField)
}

func TestCreateFieldMissingLabel(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)

	_, err := svc.CreateField(project.ID, dto.QuestionCreateDTO{
		FormTableType:       "text_field",
		Position:            1,
		TextFieldAttributes: &dto.FieldAttributesDTO{LabelName: "   "},
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "label_name is required")
}

func TestCreateFieldMissingVariantAttributes(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)

	// check_box requested but only text_field attributes supplied.
	_, err := svc.CreateField(project.ID, dto.QuestionCreateDTO{
		FormTableType:       "check_box",
		Position:            1,
		TextFieldAttributes: &dto.FieldAttributesDTO{LabelName: "done?"},
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateFieldUnknownType(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)

	_, err := svc.CreateField(project.ID, dto.QuestionCreateDTO{FormTableType: "slider", Position: 1})
	assert.ErrorIs(t, err, ErrInvalidFieldType)
}

func TestGetReportFormatOrdersByPosition(t *testing.T) {
	svc, _, db := newFormatService(t)
	project := seedProject(t, db)
	createTextField(t, svc, project.ID, 2, "second")
	createTextField(t, svc, project.ID, 1, "first")

	format, err := svc.GetReportFormat(project.ID)
	require.NoError(t, err)
	require.Len(t, format.Questions, 2)
	assert.Equal(t, "first", format.Questions[0].LabelName)
	assert.Equal(t, "second", format.Questions[1].LabelName)
}

func TestUpdateFieldsAppliesEntriesIndependently(t *testing.T) {
	svc, questionRepo, db := newFormatService(t)
	project := seedProject(t, db)
	q1 := createTextField(t, svc, project.ID, 1, "first")
	q2 := createTextField(t, svc, project.ID, 2, "second")

	report, err := svc.UpdateFields(project.ID, dto.QuestionBatchUpdateDTO{
		QuestionAttributes: map[string]dto.QuestionUpdateDTO{
			// Blank label fails validation for q1; q2 must still be applied.
			fmt.Sprint(q1.ID): {
				TextFieldAttributes: &dto.FieldUpdateAttributesDTO{LabelName: ptr("")},
			},
			fmt.Sprint(q2.ID): {
				UsingFlag:           ptr(false),
				TextFieldAttributes: &dto.FieldUpdateAttributesDTO{LabelName: ptr("renamed")},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, q1.ID, report.Results[0].QuestionID)
	assert.False(t, report.Results[0].OK)
	assert.NotEmpty(t, report.Results[0].Error)

	assert.Equal(t, q2.ID, report.Results[1].QuestionID)
	assert.True(t, report.Results[1].OK)

	updated, err := questionRepo.FindByIDInProject(project.ID, q2.ID)
	require.NoError(t, err)
	assert.False(t, updated.UsingFlag)
	assert.Equal(t, "renamed", updated.TextField.LabelName)

	untouched, err := questionRepo.FindByIDInProject(project.ID, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", untouched.TextField.LabelName)
}

func TestUpdateFieldsOptionStringBatch(t *testing.T) {
	svc, questionRepo, db := newFormatService(t)
	project := seedProject(t, db)
	created := createRadioButton(t, svc, project.ID, 1, "keep me", "destroy me")

	report, err := svc.UpdateFields(project.ID, dto.QuestionBatchUpdateDTO{
		QuestionAttributes: map[string]dto.QuestionUpdateDTO{
			fmt.Sprint(created.ID): {
				RadioButtonAttributes: &dto.RadioButtonUpdateAttributesDTO{
					OptionStringsAttributes: []dto.OptionStringAttributesDTO{
						{ID: ptr(created.OptionStrings[0].ID), OptionString: "kept and renamed"},
						{ID: ptr(created.OptionStrings[1].ID), Destroy: true},
						{OptionString: "brand new"},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].OK)

	question, err := questionRepo.FindByIDInProject(project.ID, created.ID)
	require.NoError(t, err)
	require.Len(t, question.RadioButton.OptionStrings, 2)
	assert.Equal(t, "kept and renamed", question.RadioButton.OptionStrings[0].OptionString)
	assert.Equal(t, "brand new", question.RadioButton.OptionStrings[1].OptionString)

	var count int64
	require.NoError(t, db.Model(&model.OptionString{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateFieldsRejectsForeignQuestion(t *testing.T) {
	svc, _, db := newFormatService(t)
	mine := seedProject(t, db)
	other := seedProject(t, db)
	foreign := createTextField(t, svc, other.ID, 1, "not yours")

	report, err := svc.UpdateFields(mine.ID, dto.QuestionBatchUpdateDTO{
		QuestionAttributes: map[string]dto.QuestionUpdateDTO{
			fmt.Sprint(foreign.ID): {UsingFlag: ptr(false)},
		},
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].OK)
	assert.Contains(t, report.Results[0].Error, "not found")
}

func TestDeleteFieldCascades(t *testing.T) {
	svc, questionRepo, db := newFormatService(t)
	project := seedProject(t, db)
	created := createRadioButton(t, svc, project.ID, 1, "a", "b")
	keep := createTextField(t, svc, project.ID, 2, "still here")

	require.NoError(t, svc.DeleteField(project.ID, created.ID))

	_, err := questionRepo.FindByIDInProject(project.ID, created.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var optionCount, radioCount int64
	require.NoError(t, db.Model(&model.OptionString{}).Count(&optionCount).Error)
	require.NoError(t, db.Model(&model.RadioButton{}).Count(&radioCount).Error)
	assert.Zero(t, optionCount)
	assert.Zero(t, radioCount)

	// Remaining positions are not renumbered.
	remaining, err := questionRepo.FindByIDInProject(project.ID, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining.Position)
}

func TestDeleteFieldRejectsForeignQuestion(t *testing.T) {
	svc, _, db := newFormatService(t)
	mine := seedProject(t, db)
	other := seedProject(t, db)
	foreign := createTextField(t, svc, other.ID, 1, "not yours")

	err := svc.DeleteField(mine.ID, foreign.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
