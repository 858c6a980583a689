package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/aokana/reportform/internal/dto"
	"github.com/aokana/reportform/internal/model"
	"github.com/aokana/reportform/internal/repository"
)

// ReportFormatService maintains the ordered set of field definitions making
// up a project's report format.
type ReportFormatService interface {
	GetReportFormat(projectID uint) (*dto.ReportFormatDTO, error)
	CreateField(projectID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	PrepareNewFieldDefaults(projectID uint) (*dto.NewFieldDefaultsDTO, error)
	SwitchFieldTypePreview(projectID uint, formType string) (*dto.FieldPreviewDTO, error)
	UpdateFields(projectID uint, req dto.QuestionBatchUpdateDTO) (*dto.BatchUpdateReportDTO, error)
	DeleteField(projectID, questionID uint) error
}

type reportFormatService struct {
	projectRepo  repository.ProjectRepository
	questionRepo repository.QuestionRepository
}

func NewReportFormatService(projectRepo repository.ProjectRepository, questionRepo repository.QuestionRepository) ReportFormatService {
	return &reportFormatService{projectRepo: projectRepo, questionRepo: questionRepo}
}

func (s *reportFormatService) GetReportFormat(projectID uint) (*dto.ReportFormatDTO, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found with ID %d: %w", projectID, err)
	}
	questions, err := s.questionRepo.FindByProjectID(projectID)
	if err != nil {
		log.Error().Err(err).Uint("projectID", projectID).Msg("Failed to load report format questions")
		return nil, fmt.Errorf("error fetching report format: %w", err)
	}

	resp := dto.ReportFormatDTO{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Questions:   make([]dto.QuestionResponseDTO, 0, len(questions)),
	}
	for i := range questions {
		resp.Questions = append(resp.Questions, toQuestionDTO(&questions[i]))
	}
	return &resp, nil
}

func (s *reportFormatService) CreateField(projectID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found with ID %d: %w", projectID, err)
	}

	formType := model.FieldType(req.FormTableType)
	if !formType.Valid() {
		return nil, ErrInvalidFieldType
	}
	base, optionAttrs, ok := req.VariantAttributes(formType)
	if !ok {
		return nil, newValidationError(fmt.Sprintf("%s_attributes are missing", formType))
	}
	if strings.TrimSpace(base.LabelName) == "" {
		return nil, newValidationError("label_name is required")
	}

	question := model.Question{
		ProjectID:     project.ID,
		Position:      req.Position,
		FormTableType: formType,
		UsingFlag:     true,
	}
	model.FieldVariants[formType].Attach(&question)
	settings := question.FieldSettings()
	settings.LabelName = base.LabelName
	settings.FieldType = base.FieldType

	if options := question.OptionStrings(); options != nil {
		for _, attr := range optionAttrs {
			if attr.Destroy {
				continue
			}
			*options = append(*options, model.OptionString{
				OptionString: attr.OptionString,
				Position:     len(*options) + 1,
			})
		}
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("projectID", projectID).Str("formTableType", req.FormTableType).
			Msg("Failed to create report format field")
		return nil, newValidationError("failed to register the input form")
	}

	created, err := s.questionRepo.FindByIDInProject(projectID, question.ID)
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Failed to reload newly created field")
		resp := toQuestionDTO(&question)
		return &resp, nil
	}
	resp := toQuestionDTO(created)
	return &resp, nil
}

func (s *reportFormatService) PrepareNewFieldDefaults(projectID uint) (*dto.NewFieldDefaultsDTO, error) {
	position, err := s.nextPosition(projectID)
	if err != nil {
		return nil, err
	}
	return &dto.NewFieldDefaultsDTO{
		Position:      position,
		FormTableType: string(model.FieldTypeTextField),
		Field:         dto.FieldShellDTO{},
	}, nil
}

func (s *reportFormatService) SwitchFieldTypePreview(projectID uint, formType string) (*dto.FieldPreviewDTO, error) {
	requested := model.FieldType(formType)
	if !requested.Valid() {
		return nil, ErrInvalidFieldType
	}
	position, err := s.nextPosition(projectID)
	if err != nil {
		return nil, err
	}

	shell := dto.FieldShellDTO{}
	if requested.HasOptions() {
		// One blank row so the modal shows an editable option.
		shell.OptionStrings = []dto.OptionStringDTO{{Position: 1}}
	}
	return &dto.FieldPreviewDTO{
		Position:      position,
		FormTableType: formType,
		Field:         shell,
	}, nil
}

// nextPosition computes the position a newly added field would occupy.
func (s *reportFormatService) nextPosition(projectID uint) (int, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return 0, fmt.Errorf("project not found with ID %d: %w", projectID, err)
	}
	last, err := s.questionRepo.LastPosition(projectID)
	if err != nil {
		return 0, fmt.Errorf("error determining next position: %w", err)
	}
	return last + 1, nil
}

func (s *reportFormatService) UpdateFields(projectID uint, req dto.QuestionBatchUpdateDTO) (*dto.BatchUpdateReportDTO, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return nil, fmt.Errorf("project not found with ID %d: %w", projectID, err)
	}

	report := dto.BatchUpdateReportDTO{
		Message: "report format fields updated",
		Results: make([]dto.QuestionUpdateOutcomeDTO, 0, len(req.QuestionAttributes)),
	}

	// Entries are applied independently; iteration is ordered by id only so
	// the outcome list is deterministic.
	for _, key := range sortedKeys(req.QuestionAttributes) {
		attrs := req.QuestionAttributes[key]
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			report.Results = append(report.Results, dto.QuestionUpdateOutcomeDTO{
				Error: fmt.Sprintf("invalid question id %q", key),
			})
			continue
		}
		questionID := uint(id)
		if err := s.updateOneField(projectID, questionID, attrs); err != nil {
			log.Warn().Err(err).Uint("projectID", projectID).Uint("questionID", questionID).
				Msg("Batch update entry failed")
			report.Results = append(report.Results, dto.QuestionUpdateOutcomeDTO{
				QuestionID: questionID,
				Error:      err.Error(),
			})
			continue
		}
		report.Results = append(report.Results, dto.QuestionUpdateOutcomeDTO{
			QuestionID: questionID,
			OK:         true,
		})
	}
	return &report, nil
}

func (s *reportFormatService) updateOneField(projectID, questionID uint, attrs dto.QuestionUpdateDTO) error {
	question, err := s.questionRepo.FindByIDInProject(projectID, questionID)
	if err != nil {
		return fmt.Errorf("question not found in project")
	}

	if attrs.Position != nil {
		question.Position = *attrs.Position
	}
	if attrs.UsingFlag != nil {
		question.UsingFlag = *attrs.UsingFlag
	}

	var removeOptionIDs []uint
	if patchType, base, optionAttrs, ok := attrs.VariantPatch(); ok {
		if patchType != question.FormTableType {
			return fmt.Errorf("%s_attributes do not match field type %s", patchType, question.FormTableType)
		}
		settings := question.FieldSettings()
		if settings == nil {
			return fmt.Errorf("field settings missing for question")
		}
		if base.LabelName != nil {
			if strings.TrimSpace(*base.LabelName) == "" {
				return fmt.Errorf("label_name is required")
			}
			settings.LabelName = *base.LabelName
		}
		if base.FieldType != nil {
			settings.FieldType = *base.FieldType
		}

		if len(optionAttrs) > 0 {
			options := question.OptionStrings()
			if options == nil {
				return fmt.Errorf("field type %s has no option strings", question.FormTableType)
			}
			removeOptionIDs, err = applyOptionAttributes(options, optionAttrs)
			if err != nil {
				return err
			}
		}
	}

	if err := s.questionRepo.Update(question, removeOptionIDs); err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// applyOptionAttributes merges an option-string attribute batch into the
// loaded collection: entries with an id update or destroy the matching
// record, entries without an id create a new one.
func applyOptionAttributes(options *[]model.OptionString, attrs []dto.OptionStringAttributesDTO) ([]uint, error) {
	var removeIDs []uint
	for _, attr := range attrs {
		if attr.ID == nil {
			if attr.Destroy {
				continue
			}
			*options = append(*options, model.OptionString{
				OptionString: attr.OptionString,
				Position:     len(*options) + 1,
			})
			continue
		}

		idx := -1
		for i := range *options {
			if (*options)[i].ID == *attr.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("option string %d not found", *attr.ID)
		}
		if attr.Destroy {
			removeIDs = append(removeIDs, *attr.ID)
			*options = append((*options)[:idx], (*options)[idx+1:]...)
			continue
		}
		(*options)[idx].OptionString = attr.OptionString
	}
	return removeIDs, nil
}

func (s *reportFormatService) DeleteField(projectID, questionID uint) error {
	question, err := s.questionRepo.FindByIDInProject(projectID, questionID)
	if err != nil {
		return fmt.Errorf("question not found with ID %d in project %d: %w", questionID, projectID, err)
	}
	if err := s.questionRepo.Delete(question); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to delete report format field")
		return fmt.Errorf("failed to delete the input form: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]dto.QuestionUpdateDTO) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseUint(keys[i], 10, 64)
		b, errB := strconv.ParseUint(keys[j], 10, 64)
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

// toQuestionDTO flattens a question and its active variant into the response
// shape.
func toQuestionDTO(question *model.Question) dto.QuestionResponseDTO {
	var resp dto.QuestionResponseDTO
	copier.Copy(&resp, question)
	resp.FormTableType = string(question.FormTableType)
	if settings := question.FieldSettings(); settings != nil {
		resp.LabelName = settings.LabelName
		resp.FieldType = settings.FieldType
	}
	if options := question.OptionStrings(); options != nil {
		resp.OptionStrings = make([]dto.OptionStringDTO, 0, len(*options))
		for _, opt := range *options {
			resp.OptionStrings = append(resp.OptionStrings, dto.OptionStringDTO{
				ID:           opt.ID,
				OptionString: opt.OptionString,
				Position:     opt.Position,
			})
		}
	}
	return resp
}
