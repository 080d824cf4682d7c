package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/repositories"
	"github.com/Erkhan01/football-league/storage"
)

type CreateTeamInput struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	FoundedYear int    `json:"founded_year"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, tournamentID int, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeamsByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	UploadTeamCrest(ctx context.Context, teamID int, file io.Reader, contentType string) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
	logger         *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, tournamentID int, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	count, err := s.teamRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count teams in tournament %d: %w", tournamentID, err)
	}
	if count >= tournament.MaxTeams {
		return nil, ErrTournamentFull
	}

	team := &models.Team{
		Name:         input.Name,
		City:         input.City,
		FoundedYear:  input.FoundedYear,
		TournamentID: tournamentID,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeamsByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	populateTeamListCrestURLs(teams, s.uploader)
	return teams, nil
}

func (s *teamService) UploadTeamCrest(ctx context.Context, teamID int, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrCrestStorageDisabled
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	ext, err := getExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	oldKey := team.CrestKey
	newKey := fmt.Sprintf("teams/%d/crest%s", teamID, ext)

	result, err := s.uploader.Upload(ctx, newKey, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateCrestKey(ctx, teamID, &result.Key); err != nil {
		// Пытаемся убрать уже загруженный объект, чтобы не оставлять сироту.
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up orphaned crest object",
				slog.String("key", result.Key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to save crest key for team %d: %w", teamID, err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous crest object",
				slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	team.CrestKey = &result.Key
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", id, err)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}

	if team.CrestKey != nil && *team.CrestKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.CrestKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete crest for removed team",
				slog.String("key", *team.CrestKey), slog.Any("error", err))
		}
	}
	return nil
}
