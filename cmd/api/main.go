package main

import (
	appcontext "github.com/Vikramsingh92639/email-nexus-netflix/internal/app_context"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/auth"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/config"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/controller"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/database"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/env"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/gmail"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/middleware"
	ratelimiter "github.com/Vikramsingh92639/email-nexus-netflix/internal/rate_limiter"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/repository"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/route"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("strNotEmpty", util.StrNotEmpty); err != nil {
			return
		}
		if err = v.RegisterValidation("cmin", util.CustomMin); err != nil {
			return
		}
		if err = v.RegisterValidation("cmax", util.CustomMax); err != nil {
			return
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger)

	gmailClient := gmail.NewClient(cfg.Auth.GoogleOAuthConfig.RedirectURL, logger)
	searcher := gmail.NewSearcher(gmailClient, repo.GoogleAuthConfig, repo.Email, logger)

	app := appcontext.Application{
		Config:      &cfg,
		Repository:  repo,
		Logger:      logger,
		JWTService:  jwtService,
		GmailClient: gmailClient,
		Searcher:    searcher,
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.ENV == "production" {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RateLimiterMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)

	rApi := r.Group("/api")

	route.V1_Auth(rApi, _controller.Auth)
	route.V1_OAuth(rApi, _controller.OAuth)
	route.V1_Admin(rApi, _controller, _middleware)
	route.V1_Emails(rApi, _controller.Email, _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panic("Error running server: %v \n", err)
	}
}
