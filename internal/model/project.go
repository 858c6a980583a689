package model

import (
	"time"

	"gorm.io/gorm"
)

// Project owns an ordered collection of Questions making up its report
// format. Leader is the user allowed to configure the format.
type Project struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	LeaderID    *uint          `json:"leader_id,omitempty" gorm:"index"`
	Leader      *User          `json:"leader,omitempty" gorm:"foreignKey:LeaderID"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
