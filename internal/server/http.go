package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ksolsim/football-simulator/internal/cache"
	"github.com/ksolsim/football-simulator/internal/config"
	"github.com/ksolsim/football-simulator/internal/finance"
	"github.com/ksolsim/football-simulator/internal/fixture"
	"github.com/ksolsim/football-simulator/internal/leaderboard"
	"github.com/ksolsim/football-simulator/internal/rating"
	"github.com/ksolsim/football-simulator/internal/roster"
	"github.com/ksolsim/football-simulator/internal/sim"
	"github.com/ksolsim/football-simulator/internal/standings"
	"github.com/ksolsim/football-simulator/internal/store"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	cfg         *config.Config
	db          *pgxpool.Pool
	rdb         *redis.Client
	hub         *Hub
	logger      *slog.Logger
	mux         *http.ServeMux
	clubs       *store.ClubStore
	matches     *store.MatchStore
	seasons     *store.SeasonStore
	ledger      *store.LedgerStore
	leaderboard *leaderboard.Service
	queue       *fixture.KickoffQueue
	metrics     *Metrics
}

func New(cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client, hub *Hub, metrics *Metrics, logger *slog.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		db:          db,
		rdb:         rdb,
		hub:         hub,
		logger:      logger,
		mux:         http.NewServeMux(),
		clubs:       store.NewClubStore(db),
		matches:     store.NewMatchStore(db),
		seasons:     store.NewSeasonStore(db),
		ledger:      store.NewLedgerStore(db),
		leaderboard: leaderboard.NewService(rdb),
		queue:       fixture.NewKickoffQueue(rdb),
		metrics:     metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.metrics.ServeHTTP)
	s.mux.Handle("GET /ws/matches/{id}", s.hub)

	// Club endpoints
	s.mux.HandleFunc("POST /api/clubs", s.handleUpsertClub)
	s.mux.HandleFunc("GET /api/clubs", s.handleListClubs)
	s.mux.HandleFunc("GET /api/clubs/{id}", s.handleGetClub)
	s.mux.HandleFunc("GET /api/clubs/{id}/finances", s.handleClubFinances)

	// Match and league endpoints
	s.mux.HandleFunc("GET /api/matches/{id}", s.handleGetMatch)
	s.mux.HandleFunc("GET /api/standings", s.handleStandings)
	s.mux.HandleFunc("GET /api/fixtures/due", s.handleDueFixtures)

	// Leaderboard endpoints
	s.mux.HandleFunc("GET /api/leaderboard/scorers", s.handleScorerBoard)
	s.mux.HandleFunc("GET /api/leaderboard/clubs", s.handleClubBoard)
	s.mux.HandleFunc("GET /api/leaderboard/rank/{clubID}", s.handleClubRank)

	// Admin endpoints, HMAC-signed
	admin := RequireAdmin(s.cfg.AdminSecret, s.logger)
	s.mux.Handle("POST /api/admin/seasons", admin(http.HandlerFunc(s.handleCreateSeason)))
	s.mux.Handle("POST /api/admin/rounds/run", admin(http.HandlerFunc(s.handleRunRound)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}

	if err := s.db.Ping(ctx); err != nil {
		status["db"] = "down"
		status["status"] = "degraded"
	} else {
		status["db"] = "ok"
	}

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
		status["status"] = "degraded"
	} else {
		status["redis"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if status["status"] != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error("write json", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleUpsertClub(w http.ResponseWriter, r *http.Request) {
	var team roster.Team
	if err := json.NewDecoder(r.Body).Decode(&team); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := team.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	club, err := s.clubs.Upsert(r.Context(), &team, rating.DefaultRating)
	if err != nil {
		s.logger.Error("upsert club", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, club)
}

func (s *Server) handleListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := s.clubs.List(r.Context())
	if err != nil {
		s.logger.Error("list clubs", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, clubs)
}

func (s *Server) handleGetClub(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad club id", http.StatusBadRequest)
		return
	}
	club, err := s.clubs.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if club == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, club)
}

func (s *Server) handleClubFinances(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad club id", http.StatusBadRequest)
		return
	}
	balance, err := s.ledger.Balance(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	history, err := s.ledger.ClubHistory(r.Context(), id, 50)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"balance": balance, "transactions": history})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad match id", http.StatusBadRequest)
		return
	}

	// Results are immutable once played, so a cache hit is always current.
	key := fmt.Sprintf(cache.KeyMatchResult, id)
	if doc, err := s.rdb.Get(r.Context(), key).Bytes(); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write(doc)
		return
	}

	match, err := s.matches.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if match == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if doc, err := json.Marshal(match); err == nil {
		s.rdb.Set(r.Context(), key, doc, time.Hour)
	}
	writeJSON(w, match)
}

// handleStandings rebuilds the league table from stored results. The table
// is a pure fold over the season's matches, so nothing is cached.
func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	season, err := s.seasons.Active(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if season == nil {
		http.Error(w, "no active season", http.StatusNotFound)
		return
	}

	clubs, err := s.clubs.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	results, err := s.matches.BySeason(r.Context(), season.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	table := standings.New()
	for _, c := range clubs {
		table.AddClub(c.ID, c.Name)
	}
	for _, m := range results {
		if err := table.Record(m.HomeID, m.AwayID, m.HomeGoals, m.AwayGoals); err != nil {
			s.logger.Error("standings fold", "match", m.ID, "err", err)
		}
	}
	writeJSON(w, map[string]any{
		"season": season.ID,
		"round":  season.CurrentRound,
		"rows":   table.Rows(),
	})
}

func (s *Server) handleDueFixtures(w http.ResponseWriter, r *http.Request) {
	ids, err := s.queue.Peek(r.Context(), time.Now(), 32)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"due": ids})
}

func (s *Server) handleScorerBoard(w http.ResponseWriter, r *http.Request) {
	season, err := s.seasons.Active(r.Context())
	if err != nil || season == nil {
		writeJSON(w, []any{})
		return
	}
	entries, err := s.leaderboard.TopScorers(r.Context(), season.ID, countParam(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleClubBoard(w http.ResponseWriter, r *http.Request) {
	season, err := s.seasons.Active(r.Context())
	if err != nil || season == nil {
		writeJSON(w, []any{})
		return
	}
	entries, err := s.leaderboard.TopClubs(r.Context(), season.ID, countParam(r))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleClubRank(w http.ResponseWriter, r *http.Request) {
	season, err := s.seasons.Active(r.Context())
	if err != nil || season == nil {
		http.Error(w, "no active season", http.StatusNotFound)
		return
	}
	clubID, err := strconv.ParseInt(r.PathValue("clubID"), 10, 64)
	if err != nil {
		http.Error(w, "bad club id", http.StatusBadRequest)
		return
	}
	entry, err := s.leaderboard.ClubRank(r.Context(), season.ID, clubID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if entry == nil {
		http.Error(w, "not ranked", http.StatusNotFound)
		return
	}
	writeJSON(w, entry)
}

func (s *Server) handleCreateSeason(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Days <= 0 {
		req.Days = 120
	}
	start := time.Now()
	season, err := s.seasons.Create(r.Context(), start, start.AddDate(0, 0, req.Days))
	if err != nil {
		s.logger.Error("create season", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, season)
}

// handleRunRound simulates the season's next round end to end: schedule,
// parallel simulation, persistence, Elo and leaderboard updates, prize and
// wage ledger entries, then paced replay streaming to spectators.
func (s *Server) handleRunRound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	season, err := s.seasons.Active(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if season == nil {
		http.Error(w, "no active season", http.StatusConflict)
		return
	}

	clubs, err := s.clubs.List(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if len(clubs) < 2 {
		http.Error(w, "need at least two clubs", http.StatusConflict)
		return
	}

	byID := make(map[int64]*store.Club, len(clubs))
	ids := make([]int64, 0, len(clubs))
	for i := range clubs {
		byID[clubs[i].ID] = &clubs[i]
		ids = append(ids, clubs[i].ID)
	}

	rounds := fixture.Schedule(ids)
	if season.CurrentRound >= len(rounds) {
		http.Error(w, "season complete", http.StatusConflict)
		return
	}
	roundFixtures := rounds[season.CurrentRound]

	pairings := make([]fixture.Pairing, 0, len(roundFixtures))
	for _, f := range roundFixtures {
		pairings = append(pairings, fixture.Pairing{
			Fixture: f,
			Home:    byID[f.HomeID].Team(),
			Away:    byID[f.AwayID].Team(),
		})
	}

	roundNo := season.CurrentRound + 1
	masterSeed := sim.DeriveSeed(s.cfg.MasterSeed, season.ID*1000+roundNo)
	played, err := fixture.RunRound(ctx, pairings, sim.DefaultConfig(), masterSeed)
	if err != nil {
		s.logger.Error("run round", "round", roundNo, "err", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	type playedSummary struct {
		MatchID uuid.UUID `json:"match_id"`
		Home    string    `json:"home"`
		Away    string    `json:"away"`
		Score   [2]int    `json:"score"`
	}
	summaries := make([]playedSummary, 0, len(played))

	for _, p := range played {
		res := p.Result
		matchID := p.Fixture.ID
		if err := s.settleMatch(ctx, season.ID, roundNo, p, byID); err != nil {
			s.logger.Error("settle match", "match", matchID, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		summaries = append(summaries, playedSummary{
			MatchID: matchID,
			Home:    res.HomeTeam,
			Away:    res.AwayTeam,
			Score:   res.Score,
		})

		go s.hub.StreamReplay(context.Background(), matchID.String(), res, s.cfg.ReplayPace)
	}

	// Wages fall due once per round, win or lose.
	for _, c := range clubs {
		bill := finance.SquadWageBill(c.Team())
		if err := s.ledger.Record(ctx, c.ID, store.TxWages, -bill, nil); err != nil {
			s.logger.Error("record wages", "club", c.ID, "err", err)
		}
	}

	// This round is the simulation the due kickoffs were waiting for;
	// consume them before queueing the next batch.
	if _, err := s.queue.Due(ctx, time.Now(), int64(len(roundFixtures))); err != nil {
		s.logger.Error("drain kickoff queue", "err", err)
	}

	// Schedule the next round a week out so spectators can see what's coming.
	if season.CurrentRound+1 < len(rounds) {
		kickoff := time.Now().AddDate(0, 0, 7)
		for _, f := range rounds[season.CurrentRound+1] {
			if err := s.queue.Push(ctx, f.ID, kickoff); err != nil {
				s.logger.Error("queue fixture", "fixture", f.ID, "err", err)
			}
		}
	}

	newRound, err := s.seasons.AdvanceRound(ctx, season.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.metrics.IncrRounds()
	s.metrics.AddMatches(int64(len(played)))

	writeJSON(w, map[string]any{
		"season":  season.ID,
		"round":   roundNo,
		"next":    newRound,
		"results": summaries,
	})
}

// settleMatch persists one result and applies its knock-on effects: Elo
// exchange, leaderboards, prize money and goal bonuses.
func (s *Server) settleMatch(ctx context.Context, seasonID, round int, p fixture.Played, byID map[int64]*store.Club) error {
	res := p.Result
	matchID := p.Fixture.ID
	home, away := byID[p.Fixture.HomeID], byID[p.Fixture.AwayID]

	if err := s.matches.Insert(ctx, &store.Match{
		ID:        matchID,
		SeasonID:  seasonID,
		Round:     round,
		HomeID:    home.ID,
		AwayID:    away.ID,
		HomeGoals: res.Score[0],
		AwayGoals: res.Score[1],
		Seed:      p.Seed,
		Result:    res,
	}); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	newHome, newAway := rating.Update(home.Elo, away.Elo, res.Score[0], res.Score[1])
	home.Elo, away.Elo = newHome, newAway
	if err := s.clubs.SetElo(ctx, home.ID, newHome); err != nil {
		return fmt.Errorf("set home elo: %w", err)
	}
	if err := s.clubs.SetElo(ctx, away.ID, newAway); err != nil {
		return fmt.Errorf("set away elo: %w", err)
	}
	if err := s.leaderboard.SetClubRating(ctx, seasonID, home.ID, newHome); err != nil {
		return err
	}
	if err := s.leaderboard.SetClubRating(ctx, seasonID, away.ID, newAway); err != nil {
		return err
	}

	for _, ps := range res.Players {
		if err := s.leaderboard.AddGoals(ctx, seasonID, ps.PlayerID, ps.Goals); err != nil {
			return err
		}
	}

	homePrize, awayPrize := finance.MatchPrize(res.Score[0], res.Score[1])
	if err := s.ledger.Record(ctx, home.ID, store.TxPrize, homePrize, &matchID); err != nil {
		return err
	}
	if err := s.ledger.Record(ctx, away.ID, store.TxPrize, awayPrize, &matchID); err != nil {
		return err
	}
	if bonus := finance.GoalBonus(res.Score[0]); bonus > 0 {
		if err := s.ledger.Record(ctx, home.ID, store.TxGoalBonus, bonus, &matchID); err != nil {
			return err
		}
	}
	if bonus := finance.GoalBonus(res.Score[1]); bonus > 0 {
		if err := s.ledger.Record(ctx, away.ID, store.TxGoalBonus, bonus, &matchID); err != nil {
			return err
		}
	}

	s.metrics.AddGoals(int64(res.Score[0] + res.Score[1]))
	return nil
}

func countParam(r *http.Request) int64 {
	count := int64(50)
	if c := r.URL.Query().Get("count"); c != "" {
		if n, err := strconv.ParseInt(c, 10, 64); err == nil && n > 0 && n <= 100 {
			count = n
		}
	}
	return count
}

func (s *Server) Handler() http.Handler {
	limiter := NewRateLimiter(30, 60)
	return ChainMiddleware(s.mux,
		RecoveryMiddleware(s.logger),
		LoggingMiddleware(s.logger),
		RateLimitMiddleware(limiter, s.logger),
	)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
}
