// @title           PUSCOM API
// @version         1.0
// @description     Catálogo, solicitudes de servicio, paneles y asistentes de chat de PUSCOM.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Escribir "Bearer" seguido de un espacio y el token JWT.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/irvanshandika/PUSCOM-sub000/docs"
	appanalytics "github.com/irvanshandika/PUSCOM-sub000/internal/application/analytics"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/assistant"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/auth"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	infraai "github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/ai"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/captcha"
	infradynamo "github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/dynamodb"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/identity"
	infrapdf "github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/pdf"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/postgres"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/sitemap"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/storage"
	httpRouter "github.com/irvanshandika/PUSCOM-sub000/internal/interfaces/http"
	"github.com/irvanshandika/PUSCOM-sub000/pkg/config"
	"github.com/irvanshandika/PUSCOM-sub000/pkg/logger"
)

const chatTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// baseCtx vive lo que vive el proceso; se cancela al recibir la señal de apagado
	// para cortar streams de chat y el barrido de archivos.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	pool, err := postgres.NewPool(baseCtx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(baseCtx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serviceRepo := postgres.NewServiceRequestRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	uploadRefs := postgres.NewUploadReferenceRepository(pool)

	// Feed de actividad: en PostgreSQL se escribe dentro de la transacción de intake;
	// en DynamoDB se escribe después del commit.
	var (
		activityRepo repository.ActivityRepository
		txRunner     *postgres.TxRunner
	)
	switch cfg.Activity.Store {
	case "dynamodb":
		ddb, err := infradynamo.NewClient(baseCtx, cfg.Activity)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente DynamoDB")
		}
		activityRepo = infradynamo.NewActivityRepository(ddb, cfg.Activity.DynamoTable)
		txRunner = postgres.NewTxRunner(pool, false)
	default:
		activityRepo = postgres.NewActivityRepository(pool)
		txRunner = postgres.NewTxRunner(pool, true)
	}
	log.Info().Str("store", cfg.Activity.Store).Msg("feed de actividad")

	files, err := storage.NewLocalStorage(cfg.Storage.BaseDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}

	captchaVerifier := captcha.New(cfg.Captcha.SecretKey, cfg.Captcha.MinScore, log.Component("captcha").Zerolog())

	var idVerifier ports.IdentityVerifier
	if cfg.Google.ClientID != "" {
		idVerifier = identity.NewGoogleVerifier(cfg.Google.ClientID)
	}

	models := chatModels(cfg.AI)
	for name, ok := range map[string]bool{
		"gemini": models.Gemini != nil,
		"groq":   models.Groq != nil,
		"staff":  models.Staff != nil,
	} {
		if !ok {
			log.Warn().Str("provider", name).Msg("proveedor de chat sin API key")
		}
	}

	activityUC := usecase.NewActivityUseCase(activityRepo, log.Component("activity").Zerolog())
	productUC := usecase.NewProductUseCase(productRepo, files, activityUC, log.Component("products").Zerolog())
	userUC := usecase.NewUserUseCase(userRepo, files, activityUC, log.Component("users").Zerolog())
	contactUC := usecase.NewContactUseCase(contactRepo, captchaVerifier, activityUC)
	serviceUC := usecase.NewServiceRequestUseCase(
		serviceRepo, userRepo, txRunner, files, captchaVerifier, activityUC,
		log.Component("intake").Zerolog(),
	)
	authUC := auth.NewAuthUseCase(userRepo, idVerifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(userRepo, productRepo, contactRepo, serviceRepo, activityRepo)
	statsUC := appanalytics.NewServiceStatsUseCase(serviceRepo)
	chatUC := assistant.NewChatUseCase(models, statsUC, log.Component("chat").Zerolog())

	if cfg.Storage.SweepInterval > 0 {
		sweeper := usecase.NewUploadSweeper(files, uploadRefs, cfg.Storage.OrphanTTL, log.Component("sweeper").Zerolog())
		go sweeper.Run(baseCtx, cfg.Storage.SweepInterval)
	}

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		BodyLimit:   cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout: time.Second * 30,
		IdleTimeout: time.Second * 60,
		// sin WriteTimeout: los streams SSE del chat duran hasta chatTimeout
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog()))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "PUSCOM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	uploadsPath := ""
	if strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		uploadsPath = cfg.Storage.PublicBaseURL
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		ProductUC:        productUC,
		ServiceRequestUC: serviceUC,
		ContactUC:        contactUC,
		ActivityUC:       activityUC,
		DashboardUC:      dashboardUC,
		ChatUC:           chatUC,
		Receipt:          infrapdf.NewMarotoPDFGenerator(cfg.App.PublicURL),
		Captcha:          captchaVerifier,
		Sitemap:          sitemap.NewBuilder(cfg.App.PublicURL),
		UploadsPath:      uploadsPath,
		UploadsDir:       cfg.Storage.BaseDir,
		BaseCtx:          baseCtx,
		ChatTimeout:      chatTimeout,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log.Component("http").Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancelBase()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// chatModels instancia solo los proveedores con API key; el resto queda nil
// y el caso de uso responde que el asistente no está disponible.
func chatModels(cfg config.AIConfig) assistant.Models {
	var m assistant.Models
	var anthropic ports.ChatModel
	if cfg.GeminiAPIKey != "" {
		m.Gemini = infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	if cfg.GroqAPIKey != "" {
		m.Groq = infraai.NewGroqService(cfg.GroqAPIKey, cfg.GroqModel)
	}
	if cfg.AnthropicAPIKey != "" {
		anthropic = infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}

	switch cfg.StaffProvider {
	case "groq":
		m.Staff = m.Groq
	case "anthropic":
		m.Staff = anthropic
	default:
		m.Staff = m.Gemini
	}
	return m
}
