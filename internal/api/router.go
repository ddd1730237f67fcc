package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "gridgames-server/docs"
	"gridgames-server/internal/database/repositories"
	"gridgames-server/internal/game"
)

// Server wires the HTTP facade: parsing, dispatch to the engine or query
// surface, and error-kind to status mapping.
type Server struct {
	engine  game.Engine
	queries game.QueryService
	users   repositories.UserRepository
	db      *gorm.DB
	logger  *slog.Logger
	router  *gin.Engine
}

// NewServer builds the gin router with all routes registered.
func NewServer(
	engine game.Engine,
	queries game.QueryService,
	users repositories.UserRepository,
	db *gorm.DB,
	corsOrigins []string,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:  engine,
		queries: queries,
		users:   users,
		db:      db,
		logger:  logger,
		router:  gin.New(),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(RequestLogger(logger))
	s.router.Use(CORS(corsOrigins))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.Health)
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.POST("/users", s.CreateUser)

	s.router.POST("/sessions", s.CreateSession)
	s.router.GET("/sessions", s.ListSessions)
	s.router.GET("/sessions/:id", s.GetSession)
	s.router.POST("/sessions/:id/join", s.JoinSession)
	s.router.POST("/sessions/:id/move", s.SubmitMove)

	s.router.GET("/leaderboard", s.Leaderboard)
}

// Router exposes the underlying gin engine (used by http.Server and tests).
func (s *Server) Router() *gin.Engine {
	return s.router
}
