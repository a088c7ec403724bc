package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/lctp-br/lctp-api/docs"
	v1 "github.com/lctp-br/lctp-api/internal/api/handler/v1"
	"github.com/lctp-br/lctp-api/internal/api/middleware"
	"github.com/lctp-br/lctp-api/internal/config"
	"github.com/lctp-br/lctp-api/internal/repository"
	"github.com/lctp-br/lctp-api/internal/repository/dao"
	"github.com/lctp-br/lctp-api/internal/rules"
	"github.com/lctp-br/lctp-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	ruleBook  *rules.RuleBook
	validator *rules.Validator
	scorer    *rules.Scorer
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	book := rules.DefaultRuleBook()

	s := &Server{
		Config:    conf,
		Router:    engine,
		ruleBook:  book,
		validator: rules.NewValidator(book),
		scorer:    rules.DefaultScorer(),
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	competitorHandler := s.initCompetitorHandler(db)
	categoryHandler := s.initCategoryHandler(db)
	eventHandler := s.initEventHandler(db)
	trioHandler := s.initTrioHandler(db)
	quotaHandler := s.initQuotaHandler(db)
	resultHandler := s.initResultHandler(db)
	scoreHandler := s.initScoreHandler(db)
	s.MountHandlers(authHandler, competitorHandler, categoryHandler, eventHandler, trioHandler, quotaHandler, resultHandler, scoreHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initCompetitorHandler(db *gorm.DB) *v1.CompetitorHandler {
	competitorDAO := dao.NewCompetitorDAO(db)
	repo := repository.NewCompetitorRepository(competitorDAO)
	svc := service.NewCompetitorService(repo)
	handler := v1.NewCompetitorHandler(svc)

	return handler
}

func (s *Server) initCategoryHandler(db *gorm.DB) *v1.CategoryHandler {
	categoryDAO := dao.NewCategoryDAO(db)
	repo := repository.NewCategoryRepository(categoryDAO)
	svc := service.NewCategoryService(repo, s.ruleBook)
	handler := v1.NewCategoryHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initTrioHandler(db *gorm.DB) *v1.TrioHandler {
	repo := repository.NewTrioRepository(dao.NewTrioDAO(db))
	competitorRepo := repository.NewCompetitorRepository(dao.NewCompetitorDAO(db))
	categoryRepo := repository.NewCategoryRepository(dao.NewCategoryDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewTrioService(repo, competitorRepo, categoryRepo, eventRepo, s.validator)
	handler := v1.NewTrioHandler(svc)

	return handler
}

func (s *Server) initQuotaHandler(db *gorm.DB) *v1.QuotaHandler {
	repo := repository.NewQuotaRepository(dao.NewQuotaDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	competitorRepo := repository.NewCompetitorRepository(dao.NewCompetitorDAO(db))
	svc := service.NewQuotaService(repo, eventRepo, competitorRepo)
	handler := v1.NewQuotaHandler(svc)

	return handler
}

func (s *Server) initResultHandler(db *gorm.DB) *v1.ResultHandler {
	repo := repository.NewResultRepository(dao.NewResultDAO(db))
	trioRepo := repository.NewTrioRepository(dao.NewTrioDAO(db))
	quotaRepo := repository.NewQuotaRepository(dao.NewQuotaDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewResultService(repo, trioRepo, quotaRepo, eventRepo)
	handler := v1.NewResultHandler(svc)

	return handler
}

func (s *Server) initScoreHandler(db *gorm.DB) *v1.ScoreHandler {
	repo := repository.NewScoreRepository(dao.NewScoreDAO(db))
	resultRepo := repository.NewResultRepository(dao.NewResultDAO(db))
	trioRepo := repository.NewTrioRepository(dao.NewTrioDAO(db))
	categoryRepo := repository.NewCategoryRepository(dao.NewCategoryDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewScoreService(repo, resultRepo, trioRepo, categoryRepo, eventRepo, s.scorer)
	handler := v1.NewScoreHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	competitorHandler *v1.CompetitorHandler,
	categoryHandler *v1.CategoryHandler,
	eventHandler *v1.EventHandler,
	trioHandler *v1.TrioHandler,
	quotaHandler *v1.QuotaHandler,
	resultHandler *v1.ResultHandler,
	scoreHandler *v1.ScoreHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.POST("/competitors", competitorHandler.HandleCreateCompetitor)
		protected.GET("/competitors", competitorHandler.HandleListCompetitors)
		protected.GET("/competitors/:competitorID", competitorHandler.HandleGetCompetitor)
		protected.PUT("/competitors/:competitorID", competitorHandler.HandleUpdateCompetitor)
		protected.DELETE("/competitors/:competitorID", competitorHandler.HandleDeactivateCompetitor)

		protected.POST("/categories", categoryHandler.HandleCreateCategory)
		protected.GET("/categories", categoryHandler.HandleListCategories)
		protected.GET("/categories/:categoryID", categoryHandler.HandleGetCategory)
		protected.PUT("/categories/:categoryID", categoryHandler.HandleUpdateCategory)

		protected.POST("/events", eventHandler.HandleCreateEvent)
		protected.GET("/events", eventHandler.HandleListEvents)
		protected.GET("/events/:eventID", eventHandler.HandleGetEvent)
		protected.PUT("/events/:eventID/run-config", eventHandler.HandleUpsertRunConfig)
		protected.GET("/events/:eventID/quotas", quotaHandler.HandleListQuotasByEvent)

		protected.POST("/trios", trioHandler.HandleCreateTrio)
		protected.GET("/trios", trioHandler.HandleListTrios)
		protected.POST("/trios/validate", trioHandler.HandleValidateTrio)
		protected.POST("/trios/draw", trioHandler.HandleDrawTrios)
		protected.GET("/trios/:trioID", trioHandler.HandleGetTrio)
		protected.PUT("/trios/:trioID/status", trioHandler.HandleUpdateTrioStatus)

		protected.POST("/quotas", quotaHandler.HandleCreateQuota)
		protected.POST("/quotas/auto-provision", quotaHandler.HandleAutoProvision)
		protected.GET("/quotas/:quotaID", quotaHandler.HandleGetQuota)
		protected.POST("/quotas/:quotaID/block", quotaHandler.HandleBlockQuota)
		protected.DELETE("/quotas/:quotaID/block", quotaHandler.HandleUnblockQuota)

		protected.POST("/results", resultHandler.HandleOpenResult)
		protected.GET("/results", resultHandler.HandleListResults)
		protected.POST("/results/placements", resultHandler.HandleRecomputePlacements)
		protected.GET("/results/:resultID", resultHandler.HandleGetResult)
		protected.POST("/results/:resultID/runs", resultHandler.HandleRecordRun)
		protected.PUT("/results/:resultID/prize", resultHandler.HandleUpdatePrize)

		protected.POST("/scores/compute", scoreHandler.HandleComputeScores)
		protected.GET("/scores", scoreHandler.HandleListScores)
		protected.GET("/scores/ranking", scoreHandler.HandleGetRanking)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "LCTP Trio Competition API"
	docs.SwaggerInfo.Description = "Registration, runs and championship scoring for trio roping events."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
