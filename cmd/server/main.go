package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/farhanhakim/ai-interviewer/internal/config"
	"github.com/farhanhakim/ai-interviewer/internal/domain/fiber/handler"
	applogger "github.com/farhanhakim/ai-interviewer/internal/logger"
	"github.com/farhanhakim/ai-interviewer/internal/middleware"
	"github.com/farhanhakim/ai-interviewer/internal/model"
	"github.com/farhanhakim/ai-interviewer/internal/repository"
	"github.com/farhanhakim/ai-interviewer/internal/service"
	"github.com/farhanhakim/ai-interviewer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	zlog := applogger.New(appConfig.LogLevel, appConfig.Env)
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	// Next skips the middleware, so pprof is served outside production only.
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := connectDB(zlog)

	interviewCfg := config.LoadInterviewConfig()
	completer := buildCompleter(ctx, zlog)

	sessionRepo := repository.NewSessionRepository(db)
	evaluator := service.NewAnswerEvaluator(completer, interviewCfg, zlog)
	analyzer := service.NewSkillGapAnalyzer(completer, interviewCfg, zlog)
	generator := service.NewQuestionGenerator(completer, interviewCfg, zlog)

	uc := usecase.NewInterviewUsecase(sessionRepo, evaluator, analyzer, generator, interviewCfg, zlog)
	h := handler.NewInterviewHandler(uc)
	h.RegisterRoutes(app)

	zlog.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("listen failed", zap.Error(err))
	}
}

// buildCompleter prefers Gemini when a key is configured and falls back to
// the OpenRouter gateway otherwise.
func buildCompleter(ctx context.Context, zlog *zap.Logger) service.Completer {
	geminiCfg := config.LoadGeminiConfig()
	if geminiCfg.APIKey != "" {
		gemini, err := service.NewGeminiService(ctx, geminiCfg, zlog)
		if err == nil {
			zlog.Info("using gemini completer", zap.String("model", geminiCfg.Model))
			return gemini
		}
		zlog.Warn("gemini init failed, falling back to openrouter", zap.Error(err))
	}
	openRouterCfg := config.LoadOpenRouterConfig()
	zlog.Info("using openrouter completer", zap.String("model", openRouterCfg.Model))
	return service.NewOpenRouterService(openRouterCfg, zlog)
}

func connectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.InterviewSession{}); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}
