// Package web serves packs over HTTP: a JSON API and a small HTML page that
// renders one pack.
package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/services/conversion"
	"github.com/KirkDiggler/booster-sim/internal/services/packs"
)

// Config holds dependencies for the web handler
type Config struct {
	PacksService packs.Service
	Logger       *slog.Logger
	// AllowOrigins lists CORS origins for the JSON API; empty allows all
	AllowOrigins []string
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	if c == nil || c.PacksService == nil {
		return errors.InvalidArgument("packs service is required")
	}
	return nil
}

// Handler serves the HTTP routes
type Handler struct {
	packs  packs.Service
	logger *slog.Logger
}

// NewRouter builds the gin engine with every route registered
func NewRouter(cfg *Config) (*gin.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Handler{packs: cfg.PacksService, logger: cfg.Logger}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodGet}
	if len(cfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger(), cors.New(corsCfg))
	r.SetHTMLTemplate(template.Must(template.New("pack").Parse(packPage)))

	r.GET("/healthz", h.Health)
	r.GET("/sets", h.ListSets)
	r.GET("/sets/:code/booster", h.OpenBooster)
	r.GET("/sets/:code/simulate", h.Simulate)
	r.GET("/", h.PackPage)

	return r, nil
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		h.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListSets returns every known set
func (h *Handler) ListSets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sets": conversion.NewSetViews(h.packs.ListSets())})
}

// OpenBooster opens one pack of the set named in the path
func (h *Handler) OpenBooster(c *gin.Context) {
	seed, err := packs.ParseSeed(c.Query("seed"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out, err := h.packs.Open(c.Request.Context(), &packs.OpenInput{
		Set:  c.Param("code"),
		Seed: seed,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.NewPackView(out.Pack))
}

// Simulate runs "packs until a bonus card" for the set named in the path
func (h *Handler) Simulate(c *gin.Context) {
	seed, err := packs.ParseSeed(c.Query("seed"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	trials, err := queryInt(c, "trials", 1000)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	maxPacks, err := queryInt(c, "max_packs", 0)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out, err := h.packs.Simulate(c.Request.Context(), &packs.SimulateInput{
		Set:              c.Param("code"),
		Seed:             seed,
		Trials:           trials,
		MaxPacksPerTrial: maxPacks,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversion.NewSimulationView(out.Set, out.Result, c.Query("include_trials") == "true"))
}

// PackPage renders one pack of the set in ?set= (default set otherwise)
func (h *Handler) PackPage(c *gin.Context) {
	seed, err := packs.ParseSeed(c.Query("seed"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	out, err := h.packs.Open(c.Request.Context(), &packs.OpenInput{
		Set:  c.Query("set"),
		Seed: seed,
	})
	if err != nil {
		if errors.IsResourceExhausted(err) {
			c.Header("Retry-After", "0")
		}
		c.HTML(errors.GetCode(err).HTTPStatus(), "pack", gin.H{"Error": errors.GetMessage(err)})
		return
	}

	c.HTML(http.StatusOK, "pack", gin.H{"Pack": conversion.NewPackView(out.Pack)})
}

func (h *Handler) abortWithError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeResourceExhausted {
		c.Header("Retry-After", "0")
	}
	if code == errors.CodeInternal || code == errors.CodeUnavailable {
		h.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}

	body := gin.H{
		"code":    code,
		"message": errors.GetMessage(err),
	}
	var e *errors.Error
	if errors.As(err, &e) && len(e.Meta) > 0 {
		body["details"] = e.Meta
	}
	c.AbortWithStatusJSON(code.HTTPStatus(), body)
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}
