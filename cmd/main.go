package main

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/aokana/reportform/config"
	"github.com/aokana/reportform/database"
	_ "github.com/aokana/reportform/docs" // Swagger docs
	formatctrl "github.com/aokana/reportform/internal/controller/formats"
	projectctrl "github.com/aokana/reportform/internal/controller/project"
	userctrl "github.com/aokana/reportform/internal/controller/user"
	"github.com/aokana/reportform/internal/logger"
	"github.com/aokana/reportform/internal/model"
	"github.com/aokana/reportform/internal/repository"
	"github.com/aokana/reportform/internal/service"
)

// @title Report Format Builder API
// @version 1.0
// @description Project report formats built from configurable, ordered form fields, plus account registration and invitations.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewProjectRepository,
			repository.NewQuestionRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			service.NewMailer,
			service.NewReportFormatService,
			service.NewProjectService,
			service.NewUserService,
		),

		fx.Provide(
			formatctrl.NewReportFormatController,
			projectctrl.NewProjectController,
			userctrl.NewUserController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

var lowernumPattern = regexp.MustCompile(`^[a-z0-9]+$`)

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Password rule shared by the registration DTOs.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("lowernum", func(fl validator.FieldLevel) bool {
			return lowernumPattern.MatchString(fl.Field().String())
		})
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	formatController *formatctrl.ReportFormatController,
	projectController *projectctrl.ProjectController,
	userController *userctrl.UserController,
) {
	api := router.Group("/api/v1")
	{
		projects := api.Group("/projects")
		projects.POST("", projectController.CreateProject)
		projects.GET("", projectController.GetAllProjects)
		projects.GET("/:project_id", projectController.GetProject)

		format := projects.Group("/:project_id/report-format")
		format.GET("", formatController.GetReportFormat)
		format.GET("/new", formatController.NewFieldDefaults)
		format.GET("/preview", formatController.SwitchFieldType)
		format.POST("/questions", formatController.CreateField)
		format.PATCH("/questions", formatController.UpdateFields)
		format.DELETE("/questions/:question_id", formatController.DeleteField)

		users := api.Group("/users")
		users.POST("", userController.Register)
		users.POST("/invite", userController.Invite)
		users.PATCH("/:user_id/profile", userController.UpdateProfile)
		users.GET("/:user_id/project-leader", userController.IsProjectLeader)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Report format API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Question{},
		&model.TextField{},
		&model.TextArea{},
		&model.DateField{},
		&model.RadioButton{},
		&model.CheckBox{},
		&model.Select{},
		&model.OptionString{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
