package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/raushan22882917/f-7556/internal/auth"
	"github.com/raushan22882917/f-7556/internal/config"
	"github.com/raushan22882917/f-7556/internal/db"
	"github.com/raushan22882917/f-7556/internal/engine"
	"github.com/raushan22882917/f-7556/internal/models"
)

const summaryMaxLen = 280

type Server struct {
	Store       *db.Store
	AuthService *auth.Service
	Echo        *echo.Echo
	DB          *pgxpool.Pool
	Session     *engine.Session
	Cache       *db.LeaderboardCache

	leaderboardLimit int
}

// NewServer wires the HTTP surface. session carries the live view state
// (nearest upcoming event, countdown, cached leaderboard snapshot); cache
// may be nil when redis is not configured.
func NewServer(pool *pgxpool.Pool, session *engine.Session, cache *db.LeaderboardCache, cfg config.Config) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s := &Server{
		Store:            db.NewStore(pool),
		AuthService:      auth.NewService(pool),
		Echo:             e,
		DB:               pool,
		Session:          session,
		Cache:            cache,
		leaderboardLimit: cfg.LeaderboardLimit,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.GET("/hackathons", s.handleListHackathons)
	api.GET("/hackathons/next", s.handleNextHackathon)
	api.GET("/hackathons/calendar", s.handleCalendar)
	api.GET("/hackathons/:id", s.handleGetHackathon)
	api.GET("/hackathons/:id/leaderboard", s.handleHackathonLeaderboard)
	api.GET("/leaderboard", s.handleGlobalLeaderboard)

	// Auth Routes
	api.POST("/auth/signup", s.handleSignup)
	api.POST("/auth/login", s.handleLogin)

	// Gated: registering requires a valid session.
	api.POST("/hackathons/:id/register", s.handleRegister, auth.Middleware)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleListHackathons(c echo.Context) error {
	hs, err := s.Store.ListHackathons(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list hackathons: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	hs = engine.ClassifyAll(hs, time.Now())

	if status := c.QueryParam("status"); status != "" && status != "all" {
		filtered := make([]models.Hackathon, 0, len(hs))
		for _, h := range hs {
			if h.Status == models.Phase(status) {
				filtered = append(filtered, h)
			}
		}
		hs = filtered
	}

	for i := range hs {
		hs[i].Description = SanitizeDescription(hs[i].Description)
		hs[i].Summary = Summarize(hs[i].Description, summaryMaxLen)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"hackathons": hs,
		"total":      len(hs),
	})
}

func (s *Server) handleGetHackathon(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid hackathon ID"})
	}

	h, err := s.Store.GetHackathon(c.Request().Context(), id)
	if err == db.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	if err != nil {
		c.Logger().Errorf("Failed to get hackathon %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	h.Status = engine.Classify(h.StartDate, h.EndDate, time.Now())
	h.Description = SanitizeDescription(h.Description)
	h.Summary = Summarize(h.Description, summaryMaxLen)

	return c.JSON(http.StatusOK, h)
}

// handleNextHackathon serves the session's live snapshot: the nearest
// upcoming event plus its countdown display. Before the first fetch has
// landed the snapshot is empty and the countdown reads "N/A".
func (s *Server) handleNextHackathon(c echo.Context) error {
	snap := s.Session.Snapshot()
	return c.JSON(http.StatusOK, map[string]any{
		"next_upcoming":  snap.NextUpcoming,
		"time_remaining": snap.TimeRemaining,
		"loaded":         snap.Loaded,
		"computed_at":    snap.ComputedAt,
	})
}

func (s *Server) handleCalendar(c echo.Context) error {
	dateStr := c.QueryParam("date")
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
	}

	hs, err := s.Store.ListHackathons(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list hackathons: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	hs = engine.ClassifyAll(hs, time.Now())
	match := engine.OnDate(hs, day)
	if match != nil {
		match.Description = SanitizeDescription(match.Description)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":      dateStr,
		"hackathon": match, // null when no event covers the date
	})
}

func (s *Server) handleGlobalLeaderboard(c echo.Context) error {
	ctx := c.Request().Context()
	limit := s.parseLimit(c)

	if entries, ok := s.Cache.Get(ctx, limit); ok {
		return c.JSON(http.StatusOK, map[string]any{"entries": entries, "cached": true})
	}

	records, err := s.Store.ListParticipants(ctx, limit)
	if err != nil {
		c.Logger().Errorf("Failed to list participants: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	entries := engine.Rank(records, limit)
	s.Cache.Set(ctx, limit, entries)

	return c.JSON(http.StatusOK, map[string]any{"entries": entries, "cached": false})
}

func (s *Server) handleHackathonLeaderboard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid hackathon ID"})
	}

	records, err := s.Store.ListHackathonParticipants(c.Request().Context(), id, s.parseLimit(c))
	if err != nil {
		c.Logger().Errorf("Failed to list participants for %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"hackathon_id": id,
		"entries":      engine.Rank(records, s.parseLimit(c)),
	})
}

func (s *Server) handleRegister(c echo.Context) error {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid hackathon ID"})
	}

	ctx := c.Request().Context()
	if _, err := s.Store.GetHackathon(ctx, id); err == db.ErrNotFound {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	} else if err != nil {
		c.Logger().Errorf("Failed to get hackathon %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	if err := s.Store.RegisterParticipant(ctx, id, userID); err != nil {
		c.Logger().Errorf("Failed to register %s for %s: %v", userID, id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "registered"})
}

func (s *Server) handleSignup(c echo.Context) error {
	var req auth.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Signup(c.Request().Context(), req)
	if err != nil {
		if err == auth.ErrUserExists {
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) handleLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	resp, err := s.AuthService.Login(c.Request().Context(), req)
	if err != nil {
		if err == auth.ErrInvalidCreds {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) parseLimit(c echo.Context) int {
	limit := s.leaderboardLimit
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return limit
}
