package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"hrportal/recruiting-api/internal/models"
)

const rankingSheet = "Ranked Candidates"

var rankingHeaders = []string{"Rank", "Name", "Email", "Score", "HR Summary", "Resume", "Applied", "Evaluation"}

// ExportRanking writes an already ranked list of applications to an xlsx
// workbook with one row per candidate.
func ExportRanking(job *models.Job, views []models.ApplicationView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetCellValue(rankingSheet, "A1", fmt.Sprintf("%s: ranked candidates", job.Title))
	f.SetCellValue(rankingSheet, "A2", "Generated:")
	f.SetCellValue(rankingSheet, "B2", time.Now().Format("2006-01-02 15:04:05"))

	const headerRow = 4
	for i, header := range rankingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(rankingSheet, cell, header)
	}
	f.SetCellStyle(rankingSheet, "A4", "H4", headerStyle)

	f.SetColWidth(rankingSheet, "A", "A", 8)
	f.SetColWidth(rankingSheet, "B", "C", 28)
	f.SetColWidth(rankingSheet, "D", "D", 10)
	f.SetColWidth(rankingSheet, "E", "E", 60)
	f.SetColWidth(rankingSheet, "F", "G", 22)
	f.SetColWidth(rankingSheet, "H", "H", 80)

	for i, view := range views {
		row := headerRow + 1 + i
		values := []interface{}{
			i + 1,
			valueOr(view.ApplicantName, "Anonymous"),
			valueOr(view.ApplicantEmail, ""),
			scoreCell(view.AIScore),
			view.Summary,
			view.ResumeFilename,
			view.CreatedAt.Format("2006-01-02 15:04"),
			view.AIEvaluation,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(rankingSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func scoreCell(score *float64) interface{} {
	if score == nil {
		return "No Score"
	}
	return *score
}
