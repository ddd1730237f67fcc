package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gridgames-server/internal/database/repositories"
	"gridgames-server/internal/game"
	"gridgames-server/pkg/models"
)

type createUserRequest struct {
	Name string  `json:"name" binding:"required,min=1,max=64"`
	Icon *string `json:"icon"`
}

type createSessionRequest struct {
	HostID   string  `json:"hostId" binding:"required"`
	HostName string  `json:"hostName"`
	HostIcon *string `json:"hostIcon"`
	GameIcon *string `json:"gameIcon"`
	GameType string  `json:"gameType"`
}

type joinSessionRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
}

type submitMoveRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Row      *int   `json:"row" binding:"required"`
	Col      *int   `json:"col" binding:"required"`
}

// CreateUser handles POST /users.
//
//	@Summary	Create a user identity
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createUserRequest	true	"user"
//	@Success	201		{object}	models.User
//	@Failure	400		{object}	ErrorResponse
//	@Router		/users [post]
func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := &models.User{Name: req.Name, Icon: req.Icon}
	if err := s.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// CreateSession handles POST /sessions.
//
//	@Summary	Open a new game session
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createSessionRequest	true	"session"
//	@Success	201		{object}	models.SessionView
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/sessions [post]
func (s *Server) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := s.engine.CreateSession(c.Request.Context(), game.CreateSessionInput{
		HostID:   req.HostID,
		HostName: req.HostName,
		HostIcon: req.HostIcon,
		GameIcon: req.GameIcon,
		GameType: models.GameType(req.GameType),
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /sessions/:id.
//
//	@Summary	Fetch one session
//	@Tags		sessions
//	@Produce	json
//	@Param		id	path		string	true	"session id"
//	@Success	200	{object}	models.SessionView
//	@Failure	404	{object}	ErrorResponse
//	@Router		/sessions/{id} [get]
func (s *Server) GetSession(c *gin.Context) {
	view, err := s.queries.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListSessions handles GET /sessions.
//
//	@Summary	List sessions with filters and cursor pagination
//	@Tags		sessions
//	@Produce	json
//	@Param		status	query		string	false	"WAITING | ACTIVE | FINISHED"
//	@Param		hostId	query		string	false	"filter by host"
//	@Param		limit	query		int		false	"page size (max 100)"
//	@Param		cursor	query		string	false	"opaque page token"
//	@Success	200		{object}	models.SessionPage
//	@Failure	400		{object}	ErrorResponse
//	@Router		/sessions [get]
func (s *Server) ListSessions(c *gin.Context) {
	filter := repositories.SessionFilter{
		HostID: c.Query("hostId"),
		Cursor: c.Query("cursor"),
	}

	if status := c.Query("status"); status != "" {
		switch models.SessionStatus(status) {
		case models.StatusWaiting, models.StatusActive, models.StatusFinished:
			filter.Status = models.SessionStatus(status)
		default:
			respondError(c, s.logger, models.NewValidationError(models.CodeInvalidPaging, "unknown status %q", status))
			return
		}
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respondError(c, s.logger, models.NewValidationError(models.CodeInvalidPaging, "limit must be a positive integer"))
			return
		}
		filter.Limit = limit
	}

	page, err := s.queries.ListSessions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// JoinSession handles POST /sessions/:id/join.
//
//	@Summary	Join a waiting session as the second player
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"session id"
//	@Param		body	body		joinSessionRequest	true	"player"
//	@Success	200		{object}	models.SessionView
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/sessions/{id}/join [post]
func (s *Server) JoinSession(c *gin.Context) {
	var req joinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := s.engine.JoinSession(c.Request.Context(), c.Param("id"), req.PlayerID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitMove handles POST /sessions/:id/move.
//
//	@Summary	Submit a move
//	@Tags		sessions
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"session id"
//	@Param		body	body		submitMoveRequest	true	"move"
//	@Success	200		{object}	models.SessionView
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/sessions/{id}/move [post]
func (s *Server) SubmitMove(c *gin.Context) {
	var req submitMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := s.engine.SubmitMove(c.Request.Context(), c.Param("id"), req.PlayerID, *req.Row, *req.Col)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Leaderboard handles GET /leaderboard.
//
//	@Summary	Top players by wins or efficiency
//	@Tags		leaderboard
//	@Produce	json
//	@Param		metric	query		string	false	"win_count | efficiency"
//	@Param		limit	query		int		false	"max entries (max 100)"
//	@Success	200		{array}		models.LeaderboardEntry
//	@Failure	400		{object}	ErrorResponse
//	@Router		/leaderboard [get]
func (s *Server) Leaderboard(c *gin.Context) {
	metric := repositories.LeaderboardMetric(c.DefaultQuery("metric", string(repositories.MetricWinCount)))

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, s.logger, models.NewValidationError(models.CodeInvalidPaging, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := s.queries.Leaderboard(c.Request.Context(), metric, limit)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Health handles GET /health with a database ping.
func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
