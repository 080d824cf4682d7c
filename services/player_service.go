package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/repositories"
)

type CreatePlayerInput struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number"`
	Age          int    `json:"age"`
	Nationality  string `json:"nationality"`
}

// PlayerWithStats объединяет игрока и его накопленную статистику за сезон.
type PlayerWithStats struct {
	Player *models.Player      `json:"player"`
	Stats  *models.PlayerStats `json:"stats"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, teamID int, input CreatePlayerInput) (*models.Player, error)
	GetPlayerWithStats(ctx context.Context, playerID int) (*PlayerWithStats, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
}

type playerService struct {
	playerRepo      repositories.PlayerRepository
	playerStatsRepo repositories.PlayerStatsRepository
	teamRepo        repositories.TeamRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	playerStatsRepo repositories.PlayerStatsRepository,
	teamRepo repositories.TeamRepository,
) PlayerService {
	return &playerService{
		playerRepo:      playerRepo,
		playerStatsRepo: playerStatsRepo,
		teamRepo:        teamRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, teamID int, input CreatePlayerInput) (*models.Player, error) {
	if input.Name == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.JerseyNumber < 1 || input.JerseyNumber > 99 {
		return nil, ErrJerseyNumberInvalid
	}

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	player := &models.Player{
		Name:         input.Name,
		Position:     input.Position,
		JerseyNumber: input.JerseyNumber,
		Age:          input.Age,
		Nationality:  input.Nationality,
		TeamID:       teamID,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerJerseyConflict) {
			return nil, ErrJerseyNumberTaken
		}
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerWithStats(ctx context.Context, playerID int) (*PlayerWithStats, error) {
	player, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}

	stats, err := s.playerStatsRepo.GetOrCreate(ctx, nil, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for player %d: %w", playerID, err)
	}

	return &PlayerWithStats{Player: player, Stats: stats}, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, nil, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}
