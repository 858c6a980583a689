package dto

import "github.com/aokana/reportform/internal/model"

// --- Nested attribute trees for create ---
// The shapes mirror the whitelisted parameter trees of the form builder:
// one level of variant attributes, choice variants carrying their own
// option-string collections.

// FieldAttributesDTO covers the variants without option strings.
type FieldAttributesDTO struct {
	LabelName string `json:"label_name"`
	FieldType string `json:"field_type"`
}

// OptionStringAttributesDTO is one option row in a create or update batch.
// A set Destroy marker removes the referenced option during update.
type OptionStringAttributesDTO struct {
	ID           *uint  `json:"id"`
	OptionString string `json:"option_string"`
	Destroy      bool   `json:"_destroy"`
}

type RadioButtonAttributesDTO struct {
	FieldAttributesDTO
	OptionStringsAttributes []OptionStringAttributesDTO `json:"radio_button_option_strings_attributes"`
}

type CheckBoxAttributesDTO struct {
	FieldAttributesDTO
	OptionStringsAttributes []OptionStringAttributesDTO `json:"check_box_option_strings_attributes"`
}

type SelectAttributesDTO struct {
	FieldAttributesDTO
	OptionStringsAttributes []OptionStringAttributesDTO `json:"select_option_strings_attributes"`
}

// QuestionCreateDTO is the request body for adding one field definition to a
// project's report format. Exactly the attribute tree matching FormTableType
// is expected to be present.
type QuestionCreateDTO struct {
	FormTableType string `json:"form_table_type" binding:"required"`
	Position      int    `json:"position" binding:"required,min=1"`

	TextFieldAttributes   *FieldAttributesDTO       `json:"text_field_attributes"`
	TextAreaAttributes    *FieldAttributesDTO       `json:"text_area_attributes"`
	DateFieldAttributes   *FieldAttributesDTO       `json:"date_field_attributes"`
	RadioButtonAttributes *RadioButtonAttributesDTO `json:"radio_button_attributes"`
	CheckBoxAttributes    *CheckBoxAttributesDTO    `json:"check_box_attributes"`
	SelectAttributes      *SelectAttributesDTO      `json:"select_attributes"`
}

// VariantAttributes resolves the attribute tree matching the requested
// discriminator. ok is false when the matching tree is absent from the
// payload.
func (d *QuestionCreateDTO) VariantAttributes(t model.FieldType) (base *FieldAttributesDTO, options []OptionStringAttributesDTO, ok bool) {
	switch t {
	case model.FieldTypeTextField:
		if d.TextFieldAttributes != nil {
			return d.TextFieldAttributes, nil, true
		}
	case model.FieldTypeTextArea:
		if d.TextAreaAttributes != nil {
			return d.TextAreaAttributes, nil, true
		}
	case model.FieldTypeDateField:
		if d.DateFieldAttributes != nil {
			return d.DateFieldAttributes, nil, true
		}
	case model.FieldTypeRadioButton:
		if d.RadioButtonAttributes != nil {
			return &d.RadioButtonAttributes.FieldAttributesDTO, d.RadioButtonAttributes.OptionStringsAttributes, true
		}
	case model.FieldTypeCheckBox:
		if d.CheckBoxAttributes != nil {
			return &d.CheckBoxAttributes.FieldAttributesDTO, d.CheckBoxAttributes.OptionStringsAttributes, true
		}
	case model.FieldTypeSelect:
		if d.SelectAttributes != nil {
			return &d.SelectAttributes.FieldAttributesDTO, d.SelectAttributes.OptionStringsAttributes, true
		}
	}
	return nil, nil, false
}

// --- Nested attribute trees for batch update ---

// FieldUpdateAttributesDTO is a partial patch of a variant's settings.
type FieldUpdateAttributesDTO struct {
	LabelName *string `json:"label_name"`
	FieldType *string `json:"field_type"`
}

type RadioButtonUpdateAttributesDTO struct {
	FieldUpdateAttributesDTO
	OptionStringsAttributes []OptionStringAttributesDTO `json:"radio_button_option_strings_attributes"`
}

type CheckBoxUpdateAttributesDTO struct {
	FieldUpdateAttributesDTO
	OptionStringsAttributes []OptionStringAttributesDTO `json:"check_box_option_strings_attributes"`
}

type SelectUpdateAttributesDTO struct {
	FieldUpdateAttributesDTO
	OptionStringsAttributes []OptionStringAttributesDTO `json:"select_option_strings_attributes"`
}

// QuestionUpdateDTO is one entry of a batch update, keyed by question id in
// QuestionBatchUpdateDTO. All fields are optional; absent fields are left
// untouched.
type QuestionUpdateDTO struct {
	Position  *int  `json:"position"`
	UsingFlag *bool `json:"using_flag"`

	TextFieldAttributes   *FieldUpdateAttributesDTO       `json:"text_field_attributes"`
	TextAreaAttributes    *FieldUpdateAttributesDTO       `json:"text_area_attributes"`
	DateFieldAttributes   *FieldUpdateAttributesDTO       `json:"date_field_attributes"`
	RadioButtonAttributes *RadioButtonUpdateAttributesDTO `json:"radio_button_attributes"`
	CheckBoxAttributes    *CheckBoxUpdateAttributesDTO    `json:"check_box_attributes"`
	SelectAttributes      *SelectUpdateAttributesDTO      `json:"select_attributes"`
}

// VariantPatch returns the variant patch present in the entry, if any, along
// with the discriminator it belongs to.
func (d *QuestionUpdateDTO) VariantPatch() (t model.FieldType, base *FieldUpdateAttributesDTO, options []OptionStringAttributesDTO, ok bool) {
	switch {
	case d.TextFieldAttributes != nil:
		return model.FieldTypeTextField, d.TextFieldAttributes, nil, true
	case d.TextAreaAttributes != nil:
		return model.FieldTypeTextArea, d.TextAreaAttributes, nil, true
	case d.DateFieldAttributes != nil:
		return model.FieldTypeDateField, d.DateFieldAttributes, nil, true
	case d.RadioButtonAttributes != nil:
		return model.FieldTypeRadioButton, &d.RadioButtonAttributes.FieldUpdateAttributesDTO, d.RadioButtonAttributes.OptionStringsAttributes, true
	case d.CheckBoxAttributes != nil:
		return model.FieldTypeCheckBox, &d.CheckBoxAttributes.FieldUpdateAttributesDTO, d.CheckBoxAttributes.OptionStringsAttributes, true
	case d.SelectAttributes != nil:
		return model.FieldTypeSelect, &d.SelectAttributes.FieldUpdateAttributesDTO, d.SelectAttributes.OptionStringsAttributes, true
	}
	return "", nil, nil, false
}

// QuestionBatchUpdateDTO maps question ids (as sent by the form, string
// keyed) to per-question partial updates.
type QuestionBatchUpdateDTO struct {
	QuestionAttributes map[string]QuestionUpdateDTO `json:"question_attributes" binding:"required"`
}
