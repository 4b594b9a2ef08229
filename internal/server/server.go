// Package server exposes the optimizer over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/kerfcut/internal/engine"
	"github.com/piwi3910/kerfcut/internal/export"
	"github.com/piwi3910/kerfcut/internal/logging"
	"github.com/piwi3910/kerfcut/internal/model"
)

// maxRequestBytes caps request bodies.
const maxRequestBytes = 8 << 20

type handler struct {
	logger   *slog.Logger
	settings model.CutSettings
}

// NewHandler builds the gin router. settings supply the defaults for
// requests that leave kerf, algorithm or search time unset.
func NewHandler(logger *slog.Logger, settings model.CutSettings) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{logger: logger, settings: settings}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), limitBody(maxRequestBytes))

	r.GET("/healthz", h.handleHealth)

	api := r.Group("/api/v1")
	api.GET("/presets", h.handlePresets)
	api.POST("/optimize", h.handleOptimize)
	api.POST("/compare", h.handleCompare)
	api.POST("/stats", h.handleStats)
	api.POST("/export/:format", h.handleExport)

	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// OptimizeRequest is the body of POST /api/v1/optimize and /compare. Unset
// fields fall back to the server's settings.
type OptimizeRequest struct {
	Stocks            []model.Stock `json:"stocks" binding:"required"`
	Cuts              []model.Cut   `json:"cuts" binding:"required"`
	Kerf              *float64      `json:"kerf,omitempty"`
	Algorithm         string        `json:"algorithm,omitempty"`
	SearchTimeLimitMS int           `json:"search_time_limit_ms,omitempty"`
}

// OptimizeResponse is returned by POST /api/v1/optimize.
type OptimizeResponse struct {
	Result  model.OptimizationResult `json:"result"`
	Stats   model.OptimizationStats  `json:"stats"`
	Offcuts []model.Offcut           `json:"offcuts"`
}

// PresetsResponse is returned by GET /api/v1/presets.
type PresetsResponse struct {
	Stocks     []model.StockPreset `json:"stocks"`
	Materials  []string            `json:"materials"`
	Kerfs      []model.KerfPreset  `json:"kerfs"`
	Algorithms []model.Algorithm   `json:"algorithms"`
}

func (h *handler) respondError(c *gin.Context, status int, err error) {
	h.logger.Warn("request failed", "path", c.FullPath(), "status", status, "error", err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, PresetsResponse{
		Stocks:     model.DefaultInventory().Stocks,
		Materials:  model.Materials,
		Kerfs:      model.KerfPresets,
		Algorithms: model.Algorithms,
	})
}

// bindOptimize decodes and validates an OptimizeRequest and resolves its
// settings.
func (h *handler) bindOptimize(c *gin.Context) (OptimizeRequest, model.CutSettings, error) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.CutSettings{}, fmt.Errorf("invalid request body: %w", err)
	}
	model.FillMissingIDs(req.Stocks, req.Cuts)

	settings := h.settings
	if req.Kerf != nil {
		settings.Kerf = *req.Kerf
	}
	if req.Algorithm != "" {
		algo, err := engine.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return req, settings, err
		}
		settings.Algorithm = algo
	}
	if req.SearchTimeLimitMS > 0 {
		settings.SearchTimeLimit = time.Duration(req.SearchTimeLimitMS) * time.Millisecond
	}

	if err := errors.Join(
		model.ValidateStocks(req.Stocks),
		model.ValidateCuts(req.Cuts),
		model.ValidateKerf(settings.Kerf),
	); err != nil {
		return req, settings, err
	}
	return req, settings, nil
}

func (h *handler) handleOptimize(c *gin.Context) {
	req, settings, err := h.bindOptimize(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	opt := engine.New(settings, engine.WithTracer(logging.NewTracer(h.logger)))
	result, err := opt.Optimize(c.Request.Context(), req.Stocks, req.Cuts)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	offcuts := model.DetectAllOffcuts(result, settings.Kerf)
	if offcuts == nil {
		offcuts = []model.Offcut{}
	}
	c.JSON(http.StatusOK, OptimizeResponse{
		Result:  result,
		Stats:   engine.CalculateStats(result),
		Offcuts: offcuts,
	})
}

func (h *handler) handleCompare(c *gin.Context) {
	req, settings, err := h.bindOptimize(c)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	results, err := engine.CompareScenarios(c.Request.Context(), engine.BuildDefaultScenarios(settings), req.Stocks, req.Cuts)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": results})
}

func (h *handler) handleStats(c *gin.Context) {
	var result model.OptimizationResult
	if err := c.ShouldBindJSON(&result); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid result: %w", err))
		return
	}
	c.JSON(http.StatusOK, engine.CalculateStats(result))
}

// handleExport renders a posted OptimizationResult. format is csv, svg or
// chart; svg takes a 1-based ?sheet= query parameter.
func (h *handler) handleExport(c *gin.Context) {
	var result model.OptimizationResult
	if err := c.ShouldBindJSON(&result); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid result: %w", err))
		return
	}

	var err error
	switch format := c.Param("format"); format {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="cutlist.csv"`)
		err = export.ExportCSV(c.Writer, result)
	case "svg":
		sheet, serr := sheetParam(c, result)
		if serr != nil {
			h.respondError(c, http.StatusBadRequest, serr)
			return
		}
		c.Header("Content-Type", "image/svg+xml")
		err = export.ExportSVG(c.Writer, sheet)
	case "chart":
		if len(result.Sheets) == 0 {
			h.respondError(c, http.StatusBadRequest, export.ErrNoSheets)
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		err = export.ExportChart(c.Writer, result)
	default:
		h.respondError(c, http.StatusNotFound, fmt.Errorf("unsupported export format %q", format))
		return
	}

	if err != nil {
		h.logger.Error("export failed", "format", c.Param("format"), "error", err)
	}
}

func sheetParam(c *gin.Context, result model.OptimizationResult) (model.Sheet, error) {
	n := 1
	if raw := c.Query("sheet"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return model.Sheet{}, fmt.Errorf("invalid sheet %q", raw)
		}
		n = v
	}
	if n < 1 || n > len(result.Sheets) {
		return model.Sheet{}, fmt.Errorf("sheet %d out of range 1..%d", n, len(result.Sheets))
	}
	return result.Sheets[n-1], nil
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
