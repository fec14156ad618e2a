package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/muhajir-foundation/muhajir-api/docs"
	"github.com/muhajir-foundation/muhajir-api/internal/config"
	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/handlers"
	"github.com/muhajir-foundation/muhajir-api/internal/metrics"
	"github.com/muhajir-foundation/muhajir-api/internal/middleware"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"github.com/muhajir-foundation/muhajir-api/internal/services"
	"github.com/muhajir-foundation/muhajir-api/internal/services/api_key"
	"github.com/muhajir-foundation/muhajir-api/internal/services/auth"
	"github.com/muhajir-foundation/muhajir-api/internal/services/excel"
)

// Options carries the optional collaborators of the router.
type Options struct {
	// Publisher receives feedback notifications; nil disables them.
	Publisher services.Publisher
	// Metrics is exposed at /metrics; nil disables the endpoint.
	Metrics *metrics.Metrics
}

// SetupRouter builds the services and mounts every route of the API
func SetupRouter(cfg *config.Config, db *gorm.DB, opts Options) *gin.Engine {
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger(opts.Metrics))

	allowAll := len(cfg.CORS.Origins) == 0 || (len(cfg.CORS.Origins) == 1 && cfg.CORS.Origins[0] == "*")
	corsConfig := cors.Config{
		AllowMethods:     cfg.CORS.Methods,
		AllowHeaders:     cfg.CORS.Headers,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowAll,
		MaxAge:           12 * time.Hour,
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.Origins
	}
	r.Use(cors.New(corsConfig))

	// Services
	authService := auth.NewAuthService(db, cfg)
	apiKeyService := api_key.NewService(db)
	feedbackService := services.NewFeedbackService(db, opts.Publisher, cfg.RabbitMQ.FeedbackQueue)
	mediaService := services.NewMediaService(db, cfg)
	excelService := excel.NewExcelService()

	// Repositories
	fundRepo := repository.NewFundRepository(db)
	publicationRepo := repository.NewPublicationRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	tgUserRepo := repository.NewTgUserRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Middleware
	bearer := middleware.NewBearerTokenMiddleware(authService)
	apiKeyAuth := middleware.NewAPIKeyMiddleware(apiKeyService, opts.Metrics)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	publicHandler := handlers.NewPublicHandler(fundRepo, publicationRepo, campaignRepo, walletRepo, feedbackService)
	tgHandler := handlers.NewTgHandler(tgUserRepo)
	apiKeyHandler := handlers.NewAPIKeyHandler(apiKeyService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	excelHandler := handlers.NewExcelHandler(excelService, feedbackService.Repository(), campaignRepo)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	r.Static("/uploads", mediaService.UploadDir())

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": cfg.App.Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	}
	r.GET("/health", health)

	api := r.Group(cfg.App.APIPrefix)
	{
		api.GET("/health", health)

		api.POST("/auth/token", authHandler.Login)
		api.GET("/auth/me", bearer.RequireUser(), authHandler.Me)

		api.GET("/fund/info", publicHandler.FundInfo)
		api.GET("/publications", publicHandler.ListPublications)
		api.GET("/publications/:id", publicHandler.GetPublication)
		api.GET("/campaigns", publicHandler.ListCampaigns)
		api.GET("/campaigns/:uuid", publicHandler.GetCampaign)
		api.GET("/wallets/:uuid", publicHandler.GetWallet)
		api.POST("/feedback", publicHandler.SubmitFeedback)

		// Bots sign the constant payload; see DESIGN.md on replay
		api.GET("/tg/all", apiKeyAuth.RequireSignature(cfg.Security.SignedPayload), tgHandler.ListTelegramIDs)

		users := handlers.NewCRUDHandler[models.User, models.UserCreateRequest, models.UserUpdateRequest](userRepo.CRUDRepository, "User")
		userRoutes := api.Group("/users", bearer.RequireAdmin())
		{
			userRoutes.GET("", users.List)
			userRoutes.GET("/:id", users.Get)
		}

		admin := api.Group("/admin", bearer.RequireAdmin())
		{
			users.Register(admin.Group("/users"))

			handlers.NewCRUDHandler[models.FundInfo, models.FundInfoCreateRequest, models.FundInfoUpdateRequest](
				fundRepo.Info, "Fund info").Register(admin.Group("/fund-info"))
			handlers.NewCRUDHandler[models.SocialLink, models.SocialLinkCreateRequest, models.SocialLinkUpdateRequest](
				fundRepo.SocialLinks, "Social link").Register(admin.Group("/social-links"))
			handlers.NewCRUDHandler[models.BankDetail, models.BankDetailCreateRequest, models.BankDetailUpdateRequest](
				fundRepo.BankDetails, "Bank detail").Register(admin.Group("/bank-details"))

			feedback := admin.Group("/feedback")
			feedback.GET("/export", excelHandler.ExportFeedback)
			handlers.NewCRUDHandler[models.Feedback, models.FeedbackCreateRequest, models.FeedbackUpdateRequest](
				feedbackService.Repository(), "Feedback").WithoutCreate().Register(feedback)

			campaigns := admin.Group("/campaigns")
			campaigns.GET("/export", excelHandler.ExportCampaigns)
			handlers.NewCRUDHandler[models.DonationCampaign, models.CampaignCreateRequest, models.CampaignUpdateRequest](
				campaignRepo.CRUDRepository, "Campaign").Register(campaigns)
			handlers.NewCRUDHandler[models.Wallet, models.WalletCreateRequest, models.WalletUpdateRequest](
				walletRepo.CRUDRepository, "Wallet").Register(admin.Group("/wallets"))

			publications := admin.Group("/publications")
			publications.POST("/:id/images", mediaHandler.UploadImage)
			publications.POST("/:id/videos", mediaHandler.UploadVideo)
			publications.DELETE("/images/:id", mediaHandler.DeleteImage)
			publications.DELETE("/videos/:id", mediaHandler.DeleteVideo)
			handlers.NewCRUDHandler[models.Publication, models.PublicationCreateRequest, models.PublicationUpdateRequest](
				publicationRepo.CRUDRepository, "Publication").
				WithRemover(mediaService.DeletePublication).
				Register(publications)

			handlers.NewCRUDHandler[models.TgUser, models.TgUserCreateRequest, models.TgUserUpdateRequest](
				tgUserRepo.CRUDRepository, "TgUser").Register(admin.Group("/tg/users"))

			apiKeyHandler.Register(admin.Group("/api-keys"))
		}
	}

	return r
}
