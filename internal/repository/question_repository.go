package repository

import (
	"github.com/aokana/reportform/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByIDInProject(projectID, id uint) (*model.Question, error)
	FindByProjectID(projectID uint) ([]model.Question, error)
	LastPosition(projectID uint) (int, error)
	Update(question *model.Question, removeOptionIDs []uint) error
	Delete(question *model.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// withVariants preloads every variant association and its options ordered by
// position. Only one variant is actually present per question.
func withVariants(db *gorm.DB) *gorm.DB {
	ordered := func(db *gorm.DB) *gorm.DB {
		return db.Order("option_strings.position ASC, option_strings.id ASC")
	}
	return db.
		Preload("TextField").
		Preload("TextArea").
		Preload("DateField").
		Preload("RadioButton").
		Preload("RadioButton.OptionStrings", ordered).
		Preload("CheckBox").
		Preload("CheckBox.OptionStrings", ordered).
		Preload("Select").
		Preload("Select.OptionStrings", ordered)
}

func (r *questionRepository) Create(question *model.Question) error {
	// Nested variant and option records are created along with the question.
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByIDInProject(projectID, id uint) (*model.Question, error) {
	var question model.Question
	err := withVariants(r.db).
		Where("project_id = ?", projectID).
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByProjectID(projectID uint) ([]model.Question, error) {
	var questions []model.Question
	err := withVariants(r.db).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// LastPosition returns the highest position in the project, or 0 when the
// project has no questions yet.
func (r *questionRepository) LastPosition(projectID uint) (int, error) {
	var question model.Question
	err := r.db.
		Where("project_id = ?", projectID).
		Order("position DESC").
		First(&question).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return question.Position, nil
}

func (r *questionRepository) Update(question *model.Question, removeOptionIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(removeOptionIDs) > 0 {
			if err := tx.Delete(&model.OptionString{}, removeOptionIDs).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(question).Error
	})
}

// Delete destroys the question with its variant record and that record's
// option strings.
func (r *questionRepository) Delete(question *model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		switch question.FormTableType {
		case model.FieldTypeTextField:
			if question.TextField != nil {
				if err := tx.Delete(question.TextField).Error; err != nil {
					return err
				}
			}
		case model.FieldTypeTextArea:
			if question.TextArea != nil {
				if err := tx.Delete(question.TextArea).Error; err != nil {
					return err
				}
			}
		case model.FieldTypeDateField:
			if question.DateField != nil {
				if err := tx.Delete(question.DateField).Error; err != nil {
					return err
				}
			}
		case model.FieldTypeRadioButton:
			if question.RadioButton != nil {
				if err := deleteOptions(tx, question.RadioButton.ID, model.OwnerTypeRadioButton); err != nil {
					return err
				}
				if err := tx.Delete(question.RadioButton).Error; err != nil {
					return err
				}
			}
		case model.FieldTypeCheckBox:
			if question.CheckBox != nil {
				if err := deleteOptions(tx, question.CheckBox.ID, model.OwnerTypeCheckBox); err != nil {
					return err
				}
				if err := tx.Delete(question.CheckBox).Error; err != nil {
					return err
				}
			}
		case model.FieldTypeSelect:
			if question.Select != nil {
				if err := deleteOptions(tx, question.Select.ID, model.OwnerTypeSelect); err != nil {
					return err
				}
				if err := tx.Delete(question.Select).Error; err != nil {
					return err
				}
			}
		}
		return tx.Delete(question).Error
	})
}

func deleteOptions(tx *gorm.DB, ownerID uint, ownerType string) error {
	return tx.
		Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).
		Delete(&model.OptionString{}).Error
}
