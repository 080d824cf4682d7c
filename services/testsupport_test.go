package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Erkhan01/football-league/models"
	"github.com/Erkhan01/football-league/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// passTxRunner выполняет функцию без реальной транзакции: фейковые
// репозитории игнорируют exec.
type passTxRunner struct{}

func (passTxRunner) RunInTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

// scriptedRand выдаёт заранее заданную последовательность значений Intn.
type scriptedRand struct {
	values []int
	pos    int
}

func (r *scriptedRand) Intn(n int) int {
	if r.pos >= len(r.values) {
		return 0
	}
	v := r.values[r.pos] % n
	r.pos++
	return v
}

type recordedBroadcast struct {
	RoomID  string
	Message interface{}
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []recordedBroadcast
}

func (b *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, recordedBroadcast{RoomID: roomID, Message: message})
}

// --- Фейковые репозитории (in-memory) ---

type fakeTournamentRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{nextID: 1, items: make(map[int]*models.Tournament)}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, limit, offset int) ([]*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Tournament, 0, len(r.items))
	for _, t := range r.items {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTournamentRepo) UpdateDetails(ctx context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TournamentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTournamentRepo) ListActivePastEndDate(ctx context.Context, now time.Time) ([]*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tournament
	for _, t := range r.items {
		if t.Status == models.StatusActive && t.EndDate.Before(now) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, items: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) Create(ctx context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Team
	for _, t := range r.items {
		if t.TournamentID == tournamentID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	teams, _ := r.ListByTournament(ctx, tournamentID)
	return len(teams), nil
}

func (r *fakeTeamRepo) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.CrestKey = crestKey
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.items, id)
	return nil
}

type fakePlayerRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{nextID: 1, items: make(map[int]*models.Player)}
}

func (r *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.TeamID == p.TeamID && existing.JerseyNumber == p.JerseyNumber {
			return repositories.ErrPlayerJerseyConflict
		}
	}
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlayerRepo) ListByTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int) ([]*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Player
	for _, p := range r.items {
		if p.TeamID == teamID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePlayerRepo) UpdateSuspension(ctx context.Context, exec repositories.SQLExecutor, playerID int, isSuspended bool, untilMatchID *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.IsSuspended = isSuspended
	p.SuspendedUntilMatchID = untilMatchID
	return nil
}

type fakeMatchRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, items: make(map[int]*models.Match)}
}

func (r *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now()
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Match
	for _, m := range r.items {
		if m.TournamentID != tournamentID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchDate.Before(out[j].MatchDate) })
	return out, nil
}

func (r *fakeMatchRepo) ListByTeam(ctx context.Context, teamID int, status *models.MatchStatus) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Match
	for _, m := range r.items {
		if m.HomeTeamID != teamID && m.AwayTeamID != teamID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchDate.Before(out[j].MatchDate) })
	return out, nil
}

func (r *fakeMatchRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, id int, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.HomeScore = homeScore
	m.AwayScore = awayScore
	return nil
}

func (r *fakeMatchRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Status = status
	return nil
}

func (r *fakeMatchRepo) FindNextScheduledForTeam(ctx context.Context, exec repositories.SQLExecutor, tournamentID, teamID int, after time.Time) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *models.Match
	for _, m := range r.items {
		if m.TournamentID != tournamentID || m.Status != models.MatchStatusScheduled {
			continue
		}
		if m.HomeTeamID != teamID && m.AwayTeamID != teamID {
			continue
		}
		if !m.MatchDate.After(after) {
			continue
		}
		if best == nil || m.MatchDate.Before(best.MatchDate) {
			best = m
		}
	}
	if best == nil {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *best
	return &cp, nil
}

func (r *fakeMatchRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.items {
		if m.TournamentID == tournamentID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeUpdateRepo struct {
	mu     sync.Mutex
	nextID int
	items  []*models.MatchUpdate
}

func newFakeUpdateRepo() *fakeUpdateRepo {
	return &fakeUpdateRepo{nextID: 1}
}

func (r *fakeUpdateRepo) Create(ctx context.Context, exec repositories.SQLExecutor, u *models.MatchUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	u.Timestamp = time.Now()
	cp := *u
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeUpdateRepo) ListRecentByMatch(ctx context.Context, matchID, limit int) ([]*models.MatchUpdate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.MatchUpdate
	// Последние события первыми: обратный обход журнала вставки.
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].MatchID != matchID {
			continue
		}
		cp := *r.items[i]
		out = append(out, &cp)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeUpdateRepo) CountByMatch(ctx context.Context, matchID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.items {
		if u.MatchID == matchID {
			count++
		}
	}
	return count, nil
}

type fakeMatchStatsRepo struct {
	mu    sync.Mutex
	items map[int]*models.MatchStats
}

func newFakeMatchStatsRepo() *fakeMatchStatsRepo {
	return &fakeMatchStatsRepo{items: make(map[int]*models.MatchStats)}
}

func (r *fakeMatchStatsRepo) GetByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) (*models.MatchStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[matchID]
	if !ok {
		return nil, repositories.ErrMatchStatsNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeMatchStatsRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, matchID int) (*models.MatchStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[matchID]
	if !ok {
		s = &models.MatchStats{
			MatchID:        matchID,
			HomePossession: 50,
			AwayPossession: 50,
		}
		r.items[matchID] = s
	}
	cp := *s
	return &cp, nil
}

func (r *fakeMatchStatsRepo) Update(ctx context.Context, exec repositories.SQLExecutor, stats *models.MatchStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[stats.MatchID]; !ok {
		return repositories.ErrMatchStatsNotFound
	}
	cp := *stats
	r.items[stats.MatchID] = &cp
	return nil
}

type fakePlayerStatsRepo struct {
	mu    sync.Mutex
	items map[int]*models.PlayerStats
}

func newFakePlayerStatsRepo() *fakePlayerStatsRepo {
	return &fakePlayerStatsRepo{items: make(map[int]*models.PlayerStats)}
}

func (r *fakePlayerStatsRepo) GetByPlayer(ctx context.Context, exec repositories.SQLExecutor, playerID int) (*models.PlayerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[playerID]
	if !ok {
		return nil, repositories.ErrPlayerStatsNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakePlayerStatsRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, playerID int) (*models.PlayerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[playerID]
	if !ok {
		s = &models.PlayerStats{PlayerID: playerID}
		r.items[playerID] = s
	}
	cp := *s
	return &cp, nil
}

func (r *fakePlayerStatsRepo) Update(ctx context.Context, exec repositories.SQLExecutor, stats *models.PlayerStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[stats.PlayerID]; !ok {
		return repositories.ErrPlayerStatsNotFound
	}
	cp := *stats
	r.items[stats.PlayerID] = &cp
	return nil
}

type fakePerformanceRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*models.PlayerMatchPerformance
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{nextID: 1, items: make(map[int]*models.PlayerMatchPerformance)}
}

func (r *fakePerformanceRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.PlayerMatchPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePerformanceRepo) GetByPlayerAndMatch(ctx context.Context, exec repositories.SQLExecutor, playerID, matchID int) (*models.PlayerMatchPerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.PlayerID == playerID && p.MatchID == matchID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPerformanceNotFound
}

func (r *fakePerformanceRepo) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.PlayerMatchPerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PlayerMatchPerformance
	for _, p := range r.items {
		if p.MatchID == matchID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePerformanceRepo) Update(ctx context.Context, exec repositories.SQLExecutor, p *models.PlayerMatchPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return repositories.ErrPerformanceNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}
