package model

import (
	"time"
)

// FieldBase holds the settings shared by every field variant. LabelName is
// the prompt shown to the respondent; FieldType is a rendering/validation
// hint (e.g. "required", "optional").
type FieldBase struct {
	LabelName string `json:"label_name" gorm:"not null"`
	FieldType string `json:"field_type"`
}

type TextField struct {
	ID         uint `gorm:"primarykey" json:"id"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex"`
	FieldBase  `gorm:"embedded"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TextArea struct {
	ID         uint `gorm:"primarykey" json:"id"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex"`
	FieldBase  `gorm:"embedded"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DateField struct {
	ID         uint `gorm:"primarykey" json:"id"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex"`
	FieldBase  `gorm:"embedded"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RadioButton struct {
	ID            uint `gorm:"primarykey" json:"id"`
	QuestionID    uint `json:"question_id" gorm:"not null;uniqueIndex"`
	FieldBase     `gorm:"embedded"`
	OptionStrings []OptionString `json:"option_strings,omitempty" gorm:"polymorphic:Owner"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type CheckBox struct {
	ID            uint `gorm:"primarykey" json:"id"`
	QuestionID    uint `json:"question_id" gorm:"not null;uniqueIndex"`
	FieldBase     `gorm:"embedded"`
	OptionStrings []OptionString `json:"option_strings,omitempty" gorm:"polymorphic:Owner"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type Select struct {
	ID            uint `gorm:"primarykey" json:"id"`
	QuestionID    uint `json:"question_id" gorm:"not null;uniqueIndex"`
	FieldBase     `gorm:"embedded"`
	OptionStrings []OptionString `json:"option_strings,omitempty" gorm:"polymorphic:Owner"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Polymorphic owner_type values as gorm derives them from the owning tables.
const (
	OwnerTypeRadioButton = "radio_buttons"
	OwnerTypeCheckBox    = "check_boxes"
	OwnerTypeSelect      = "selects"
)

// OptionString is one selectable choice owned by a radio button, check box
// or select field.
type OptionString struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	OwnerID      uint      `json:"owner_id" gorm:"not null;index:idx_option_strings_owner"`
	OwnerType    string    `json:"owner_type" gorm:"not null;index:idx_option_strings_owner"`
	OptionString string    `json:"option_string"`
	Position     int       `json:"position" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
