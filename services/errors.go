package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed     = errors.New("validation failed")
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrJerseyNumberInvalid  = errors.New("jersey number must be between 1 and 99")
	ErrTournamentFull       = errors.New("tournament registration is full")
	ErrNotEnoughTeams       = errors.New("at least 2 teams are required to generate fixtures")
	ErrMatchNotScheduled    = errors.New("match can only be started from scheduled status")
	ErrInvalidTeamSide      = errors.New("team must be either 'home' or 'away'")
	ErrInvalidCardType      = errors.New("card type must be 'yellow' or 'red'")
	ErrPlayerNotInMatch     = errors.New("player is not in one of the teams playing this match")
	ErrCrestContentType     = errors.New("unsupported crest content type")
	ErrCrestStorageDisabled = errors.New("crest storage is not configured")

	// Ошибки конфликтов
	ErrJerseyNumberTaken      = errors.New("jersey number is already taken")
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Ошибки, специфичные для сущностей (дублируют ErrNotFound, но дают больше контекста)
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Ошибки турниров
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentDatesRequired           = errors.New("tournament start and end dates are required")
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidCapacity         = errors.New("tournament max teams must be at least 2")
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
)
