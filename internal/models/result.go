package models

import "time"

type CreateJobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type CreateJobResponse struct {
	Success bool `json:"success"`
	Job     *Job `json:"job"`
}

type DeleteJobResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

type ApplyResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id"`
	AIEvaluation  string `json:"ai_evaluation"`
}

// ApplicationView is an application as shown in a job's ranking. AIScore is
// nil when no score could be read from the evaluation text.
type ApplicationView struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	ApplicantName  *string   `json:"applicant_name"`
	ApplicantEmail *string   `json:"applicant_email"`
	ResumeFilename string    `json:"resume_filename"`
	AnswersJSON    string    `json:"answers_json"`
	AIEvaluation   string    `json:"ai_evaluation"`
	AIScore        *float64  `json:"ai_score"`
	Summary        string    `json:"summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
