package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	ID    uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title string    `gorm:"column:title;not null" json:"title"`

	// ConceptID keys a Concept node in the graph store, so it stays a string
	// end to end even when the value looks numeric.
	ConceptID string    `gorm:"column:concept_id;not null;index" json:"concept_id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Lesson    *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`

	PassingScore     int  `gorm:"column:passing_score;not null;default:70" json:"passing_score"`
	MaxAttempts      int  `gorm:"column:max_attempts;not null;default:3" json:"max_attempts"`
	TimeLimitMinutes int  `gorm:"column:time_limit_minutes;not null;default:0" json:"time_limit_minutes"`
	Published        bool `gorm:"column:published;not null;default:false;index" json:"published"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Quiz) TableName() string { return "quiz" }

type QuizAttempt struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz   *Quiz     `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`

	Score  float64 `gorm:"column:score;not null" json:"score"`
	Passed bool    `gorm:"column:passed;not null;default:false" json:"passed"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }
