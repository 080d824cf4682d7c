package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/storage"
)

// --- Общие хелперы ---

func validateTournamentDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrTournamentDatesRequired
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start date (%s) must be before end date (%s)",
			ErrTournamentInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

func isValidTournamentStatus(status models.TournamentStatus) bool {
	switch status {
	case models.StatusRegistration, models.StatusActive, models.StatusCompleted:
		return true
	}
	return false
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusRegistration: {models.StatusActive},
		models.StatusActive:       {models.StatusCompleted},
		models.StatusCompleted:    {},
	}
	for _, allowedNextStatus := range allowedTransitions[current] {
		if next == allowedNextStatus {
			return true
		}
	}
	return false
}

// --- Хелперы для заполнения публичных URL эмблем ---

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.CrestKey != nil && *team.CrestKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.CrestKey)
		if url != "" {
			team.CrestURL = &url
		}
	}
}

func populateTeamListCrestURLs(teams []*models.Team, uploader storage.FileUploader) {
	if uploader == nil {
		return
	}
	for _, t := range teams {
		populateTeamCrestURL(t, uploader)
	}
}

// getExtensionFromContentType определяет расширение файла эмблемы по
// Content-Type загрузки.
func getExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			// Убираем возможные суффиксы типа "+xml" (например, "image/svg+xml")
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("%w: %q", ErrCrestContentType, contentType)
	}
}
