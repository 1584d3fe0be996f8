package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Application struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID          uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	ApplicantName  *string   `gorm:"type:text" json:"applicant_name"`
	ApplicantEmail *string   `gorm:"type:text" json:"applicant_email"`
	ResumePath     string    `gorm:"type:text" json:"resume_path"`
	ResumeFilename string    `gorm:"type:text" json:"resume_filename"`
	// AnswersJSON is the JSON-encoded []AnswerRecord the candidate submitted.
	AnswersJSON string `gorm:"type:text" json:"answers_json"`
	// AIEvaluation is the model's verdict stored verbatim.
	AIEvaluation string    `gorm:"type:text" json:"ai_evaluation"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AnswerRecord is one interview question and the candidate's answer to it.
type AnswerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
