package services

import (
	"sort"

	"hrportal/recruiting-api/internal/models"
)

// RankApplications builds the read-time ranking of a job's applications:
// highest extracted score first, unscored entries last, ties kept in their
// original order. The stored applications are not modified.
func RankApplications(applications []models.Application) []models.ApplicationView {
	views := make([]models.ApplicationView, 0, len(applications))
	for _, app := range applications {
		view := models.ApplicationView{
			ID:             app.ID.String(),
			JobID:          app.JobID.String(),
			ApplicantName:  app.ApplicantName,
			ApplicantEmail: app.ApplicantEmail,
			ResumeFilename: app.ResumeFilename,
			AnswersJSON:    app.AnswersJSON,
			AIEvaluation:   app.AIEvaluation,
			Summary:        ExtractSummary(app.AIEvaluation),
			CreatedAt:      app.CreatedAt,
		}
		if score, ok := ExtractScore(app.AIEvaluation); ok {
			view.AIScore = &score
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return scoreRanksBefore(views[i].AIScore, views[j].AIScore)
	})
	return views
}

func scoreRanksBefore(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a > *b
	}
}
