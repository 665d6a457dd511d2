package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// PlayResponse is the GET /game/play/:index body.
type PlayResponse struct {
	Arm    int     `json:"arm"`
	Reward float64 `json:"reward"`
}

// StartResponse is the GET /game/start body.
type StartResponse struct {
	Started bool `json:"started"`
	Max     *int `json:"max,omitempty"`
}

// ProfilesResponse is the GET /game/profiles body.
type ProfilesResponse struct {
	Profiles []float64 `json:"profiles"`
}

// Handlers serves a Session over HTTP.
type Handlers struct {
	session *Session
	log     logrus.FieldLogger
}

// NewHandlers builds handlers for session.
func NewHandlers(session *Session, log logrus.FieldLogger) *Handlers {
	return &Handlers{session: session, log: log.WithField("component", "http")}
}

// NewRouter mounts the game routes under /game and Prometheus under /metrics.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	game := r.Group("/game")
	game.GET("", h.HandleDescribe)
	game.GET("/start", h.HandleStart)
	game.GET("/play/:index", h.HandlePlay)
	game.GET("/score", h.HandleScore)
	game.GET("/reset", h.HandleReset)
	game.GET("/profiles", h.HandleProfiles)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// HandleDescribe handles GET /game.
func (h *Handlers) HandleDescribe(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Describe())
}

// HandleStart handles GET /game/start[?max=N]. Without max the game is
// unbounded.
func (h *Handlers) HandleStart(c *gin.Context) {
	budget := trial.Unbounded()
	resp := StartResponse{Started: true}
	if raw, ok := c.GetQuery("max"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.log.WithField("max", raw).Warn("bad max trials")
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "max must be a non-negative integer",
				Code:  "INVALID_ARGUMENT",
			})
			return
		}
		budget = trial.Bounded(n)
		resp.Max = &n
	}
	h.session.Start(budget)
	c.JSON(http.StatusOK, resp)
}

// HandlePlay handles GET /game/play/:index.
func (h *Handlers) HandlePlay(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "index must be an integer",
			Code:  "INVALID_ARGUMENT",
		})
		return
	}
	reward, err := h.session.Play(idx)
	if err != nil {
		status, code := statusFor(err)
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}
	c.JSON(http.StatusOK, PlayResponse{Arm: idx, Reward: reward})
}

// HandleScore handles GET /game/score.
func (h *Handlers) HandleScore(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Score())
}

// HandleReset handles GET /game/reset.
func (h *Handlers) HandleReset(c *gin.Context) {
	h.session.Reset()
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// HandleProfiles handles GET /game/profiles.
func (h *Handlers) HandleProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, ProfilesResponse{Profiles: h.session.Profiles()})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, casino.ErrIndexOutOfRange):
		return http.StatusNotFound, "INDEX_OUT_OF_RANGE"
	case errors.Is(err, casino.ErrNotStarted):
		return http.StatusConflict, "NOT_STARTED"
	case errors.Is(err, casino.ErrTrialLimit):
		return http.StatusTooManyRequests, "TRIAL_LIMIT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
