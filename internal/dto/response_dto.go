package dto

import "time"

// ErrorResponse is the JSON error body shared by all handlers.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// OptionStringDTO is one selectable choice of a choice-type field.
type OptionStringDTO struct {
	ID           uint   `json:"id,omitempty"`
	OptionString string `json:"option_string"`
	Position     int    `json:"position"`
}

// QuestionResponseDTO is one field definition with its variant settings
// flattened in.
type QuestionResponseDTO struct {
	ID            uint              `json:"id"`
	ProjectID     uint              `json:"project_id"`
	Position      int               `json:"position"`
	FormTableType string            `json:"form_table_type"`
	UsingFlag     bool              `json:"using_flag"`
	LabelName     string            `json:"label_name"`
	FieldType     string            `json:"field_type,omitempty"`
	OptionStrings []OptionStringDTO `json:"option_strings,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ReportFormatDTO is the edit-view payload: every field definition of a
// project ordered by position.
type ReportFormatDTO struct {
	ProjectID   uint                  `json:"project_id"`
	ProjectName string                `json:"project_name"`
	Questions   []QuestionResponseDTO `json:"questions"`
}

// FieldShellDTO is an unsaved, in-memory variant shell used to render the
// new-field modal.
type FieldShellDTO struct {
	LabelName     string            `json:"label_name"`
	FieldType     string            `json:"field_type"`
	OptionStrings []OptionStringDTO `json:"option_strings,omitempty"`
}

// NewFieldDefaultsDTO pre-populates the new-field modal: the position the
// field would occupy and an empty text-field shell.
type NewFieldDefaultsDTO struct {
	Position      int           `json:"position"`
	FormTableType string        `json:"form_table_type"`
	Field         FieldShellDTO `json:"field"`
}

// FieldPreviewDTO is the response of the type-switch endpoint backing the
// modal's dynamic sub-form swap.
type FieldPreviewDTO struct {
	Position      int           `json:"position"`
	FormTableType string        `json:"form_table_type"`
	Field         FieldShellDTO `json:"field"`
}

// QuestionCreatedDTO reports a successful create together with the notice
// message shown to the user.
type QuestionCreatedDTO struct {
	Message  string              `json:"message"`
	Question QuestionResponseDTO `json:"question"`
}

// QuestionUpdateOutcomeDTO is the per-entry result of a batch update.
type QuestionUpdateOutcomeDTO struct {
	QuestionID uint   `json:"question_id"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
}

// BatchUpdateReportDTO aggregates the independent per-question outcomes of a
// batch update so the client can report partial failure precisely.
type BatchUpdateReportDTO struct {
	Message string                     `json:"message"`
	Results []QuestionUpdateOutcomeDTO `json:"results"`
}

// ProjectSummaryDTO is used when listing projects.
type ProjectSummaryDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	LeaderID      *uint     `json:"leader_id,omitempty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProjectResponseDTO is the detail view of a single project.
type ProjectResponseDTO struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Leader      *UserResponseDTO `json:"leader,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
