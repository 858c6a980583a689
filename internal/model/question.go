package model

import (
	"time"
)

// FieldType discriminates the six supported form field variants.
type FieldType string

const (
	FieldTypeTextField   FieldType = "text_field"
	FieldTypeTextArea    FieldType = "text_area"
	FieldTypeDateField   FieldType = "date_field"
	FieldTypeRadioButton FieldType = "radio_button"
	FieldTypeCheckBox    FieldType = "check_box"
	FieldTypeSelect      FieldType = "select"
)

// Question is one configurable form field within a project's report format.
// Exactly one of the variant associations is set, matching FormTableType.
type Question struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	ProjectID     uint      `json:"project_id" gorm:"not null;uniqueIndex:idx_questions_project_position,priority:1"`
	Position      int       `json:"position" gorm:"not null;uniqueIndex:idx_questions_project_position,priority:2"`
	FormTableType FieldType `json:"form_table_type" gorm:"type:varchar(32);not null"`
	UsingFlag     bool      `json:"using_flag" gorm:"not null;default:true"`

	TextField   *TextField   `json:"text_field,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	TextArea    *TextArea    `json:"text_area,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	DateField   *DateField   `json:"date_field,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	RadioButton *RadioButton `json:"radio_button,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CheckBox    *CheckBox    `json:"check_box,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	Select      *Select      `json:"select,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FieldVariantSpec describes one entry of the type-dispatch table.
type FieldVariantSpec struct {
	HasOptions bool
	// Attach allocates the matching empty variant on the question.
	Attach func(q *Question)
}

// FieldVariants maps each discriminator to its variant descriptor. All
// construction-time dispatch goes through this table.
var FieldVariants = map[FieldType]FieldVariantSpec{
	FieldTypeTextField:   {Attach: func(q *Question) { q.TextField = &TextField{} }},
	FieldTypeTextArea:    {Attach: func(q *Question) { q.TextArea = &TextArea{} }},
	FieldTypeDateField:   {Attach: func(q *Question) { q.DateField = &DateField{} }},
	FieldTypeRadioButton: {HasOptions: true, Attach: func(q *Question) { q.RadioButton = &RadioButton{} }},
	FieldTypeCheckBox:    {HasOptions: true, Attach: func(q *Question) { q.CheckBox = &CheckBox{} }},
	FieldTypeSelect:      {HasOptions: true, Attach: func(q *Question) { q.Select = &Select{} }},
}

// Valid reports whether t is one of the six supported discriminators.
func (t FieldType) Valid() bool {
	_, ok := FieldVariants[t]
	return ok
}

// HasOptions reports whether the variant owns an option-string collection.
func (t FieldType) HasOptions() bool {
	return FieldVariants[t].HasOptions
}

// FieldSettings returns the label/field settings of the active variant, or
// nil when no variant matching FormTableType is attached.
func (q *Question) FieldSettings() *FieldBase {
	switch q.FormTableType {
	case FieldTypeTextField:
		if q.TextField != nil {
			return &q.TextField.FieldBase
		}
	case FieldTypeTextArea:
		if q.TextArea != nil {
			return &q.TextArea.FieldBase
		}
	case FieldTypeDateField:
		if q.DateField != nil {
			return &q.DateField.FieldBase
		}
	case FieldTypeRadioButton:
		if q.RadioButton != nil {
			return &q.RadioButton.FieldBase
		}
	case FieldTypeCheckBox:
		if q.CheckBox != nil {
			return &q.CheckBox.FieldBase
		}
	case FieldTypeSelect:
		if q.Select != nil {
			return &q.Select.FieldBase
		}
	}
	return nil
}

// OptionStrings returns a pointer to the option collection of the active
// choice variant, or nil for variants without options.
func (q *Question) OptionStrings() *[]OptionString {
	switch q.FormTableType {
	case FieldTypeRadioButton:
		if q.RadioButton != nil {
			return &q.RadioButton.OptionStrings
		}
	case FieldTypeCheckBox:
		if q.CheckBox != nil {
			return &q.CheckBox.OptionStrings
		}
	case FieldTypeSelect:
		if q.Select != nil {
			return &q.Select.OptionStrings
		}
	}
	return nil
}
