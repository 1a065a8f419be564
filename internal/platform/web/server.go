// Package web serves a read-only HTTP API over the arcade's games, best
// scores and run history.
package web

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/grid-arcade/internal/arcade"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/render"
	"github.com/vovakirdan/grid-arcade/internal/scores"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

const (
	defaultRunLimit = 10
	maxRunLimit     = 100
	maxPreviewScale = 8
)

// RunSource reads run history.
type RunSource interface {
	TopRuns(gameID string, limit int) ([]storage.Run, error)
	Stats(gameID string) (*storage.GameStats, error)
}

// Server is the HTTP API.
type Server struct {
	addr   string
	stores arcade.StoreFunc
	runs   RunSource // nil without a database
	engine *gin.Engine
	logger *log.Logger
}

// NewServer builds the router. runs may be nil.
func NewServer(addr string, stores arcade.StoreFunc, runs RunSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		addr:   addr,
		stores: stores,
		runs:   runs,
		logger: logger,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.logRequests)

	api := r.Group("/api")
	{
		api.GET("/games", s.listGames)

		game := api.Group("/games/:id")
		game.Use(s.requireGame)
		{
			game.GET("/best", s.best)
			game.GET("/runs", s.topRuns)
			game.GET("/stats", s.stats)
			game.GET("/preview.png", s.preview)
		}
	}

	s.engine = r
	return s
}

// Handler returns the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

// requireGame resolves :id and stores its GameInfo under "game".
func (s *Server) requireGame(c *gin.Context) {
	info, ok := registry.Info(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, fmt.Errorf("unknown game %q", c.Param("id")))
		c.Abort()
		return
	}
	c.Set("game", info)
	c.Next()
}

func gameInfo(c *gin.Context) registry.GameInfo {
	return c.MustGet("game").(registry.GameInfo)
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

type gameJSON struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Levels       int    `json:"levels"`
	Variants     int    `json:"variants"`
	VariantLabel string `json:"variant_label,omitempty"`
	VariantMin   int    `json:"variant_min"`
}

func (s *Server) listGames(c *gin.Context) {
	list := registry.List()
	out := make([]gameJSON, len(list))
	for i, g := range list {
		out[i] = gameJSON{
			ID:           g.ID,
			Title:        g.Title,
			Levels:       g.Levels,
			Variants:     g.Variants,
			VariantLabel: g.VariantLabel,
			VariantMin:   g.VariantMin,
		}
	}
	c.JSON(http.StatusOK, out)
}

type bestJSON struct {
	Game string     `json:"game"`
	Best [][]uint32 `json:"best"` // best[level][variant]
}

func (s *Server) best(c *gin.Context) {
	info := gameInfo(c)
	t := scores.Load(s.stores(info.ID), info.Levels, info.Variants)
	c.JSON(http.StatusOK, bestJSON{Game: info.ID, Best: t.Rows()})
}

func (s *Server) topRuns(c *gin.Context) {
	if s.runs == nil {
		fail(c, http.StatusNotImplemented, errors.New("run history needs the sqlite backend"))
		return
	}
	limit, err := queryInt(c, "limit", defaultRunLimit, 1, maxRunLimit)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	runs, err := s.runs.TopRuns(gameInfo(c).ID, limit)
	if err != nil {
		s.logger.Error("cannot load runs", "error", err)
		fail(c, http.StatusInternalServerError, errors.New("cannot load runs"))
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) stats(c *gin.Context) {
	if s.runs == nil {
		fail(c, http.StatusNotImplemented, errors.New("run history needs the sqlite backend"))
		return
	}
	st, err := s.runs.Stats(gameInfo(c).ID)
	if err != nil {
		s.logger.Error("cannot load stats", "error", err)
		fail(c, http.StatusInternalServerError, errors.New("cannot load stats"))
		return
	}
	c.JSON(http.StatusOK, st)
}

// preview renders the menu screen of a fresh game instance.
func (s *Server) preview(c *gin.Context) {
	info := gameInfo(c)
	scale, err := queryInt(c, "scale", render.DefaultImageOptions().Scale, 1, maxPreviewScale)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	g, err := registry.Create(info.ID, registry.Env{
		Rand:   rand.New(rand.NewSource(1)),
		Scores: s.stores(info.ID),
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}

	opt := render.DefaultImageOptions()
	opt.Scale = scale
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := render.PNG(c.Writer, g.Frame(), opt); err != nil {
		s.logger.Error("cannot encode preview", "game", info.ID, "error", err)
	}
}

// queryInt parses an optional integer query parameter within [lo, hi].
func queryInt(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%s must be an integer in [%d, %d]", name, lo, hi)
	}
	return v, nil
}
