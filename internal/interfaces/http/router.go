package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/irvanshandika/PUSCOM-sub000/internal/application/analytics"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/assistant"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/auth"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/usecase"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/infrastructure/sitemap"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	ProductUC        *usecase.ProductUseCase
	ServiceRequestUC *usecase.ServiceRequestUseCase
	ContactUC        *usecase.ContactUseCase
	ActivityUC       *usecase.ActivityUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	ChatUC           *assistant.ChatUseCase

	Receipt ports.ReceiptGenerator
	Captcha ports.CaptchaVerifier
	Sitemap *sitemap.Builder

	// UploadsPath/UploadsDir sirven los archivos subidos (p. ej. "/uploads" → ./uploads).
	UploadsPath string
	UploadsDir  string

	// BaseCtx se cancela al apagar el servidor y corta los streams de chat abiertos.
	BaseCtx     context.Context
	ChatTimeout time.Duration

	JWTSecret string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
//
// Política de roles:
//   - público: catálogo, contacto, reCAPTCHA, chat de clientes, auth, sitemap
//   - autenticado: perfil (/api/me) e ingreso/recibo/historial de servicios
//   - admin o teknisi: resumen, panel de servicios, asistente manajemen-servis
//   - admin: productos, usuarios, contactos y feed de actividad
func Router(app *fiber.App, deps RouterDeps) {
	baseCtx := deps.BaseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	authMW := AuthMiddleware(deps.JWTSecret)
	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleTeknisi)
	adminOnly := RequireRole(entity.RoleAdmin)

	authHandler := NewAuthHandler(deps.AuthUC)
	profileHandler := NewProfileHandler(deps.UserUC)
	productHandler := NewProductHandler(deps.ProductUC)
	serviceHandler := NewServiceRequestHandler(deps.ServiceRequestUC, deps.Receipt)
	contactHandler := NewContactHandler(deps.ContactUC, deps.Captcha)
	userHandler := NewUserHandler(deps.UserUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ActivityUC)
	chatHandler := NewChatHandler(deps.ChatUC, baseCtx, deps.ChatTimeout, deps.Log)

	if deps.Sitemap != nil {
		app.Get("/sitemap.xml", NewSitemapHandler(deps.ProductUC, deps.Sitemap).Get)
	}
	if deps.UploadsPath != "" && deps.UploadsDir != "" {
		app.Static(deps.UploadsPath, deps.UploadsDir, fiber.Static{MaxAge: 3600})
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/google", authHandler.Google)

	// Catálogo (público); las rutas fijas van antes de /:id
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/slug/:slug", productHandler.GetBySlug)
	products.Get("/:id", productHandler.GetByID)

	// Contacto y reCAPTCHA (público)
	api.Post("/contacts", contactHandler.Submit)
	api.Post("/recaptcha", contactHandler.VerifyRecaptcha)

	// Chat
	chat := api.Group("/chat")
	chat.Post("/gemini", chatHandler.Gemini)
	chat.Post("/groq", chatHandler.Groq)
	chat.Post("/manajemen-servis", authMW, staffOnly, chatHandler.ManajemenServis)

	// Perfil (autenticado)
	me := api.Group("/me", authMW)
	me.Get("/", profileHandler.Get)
	me.Patch("/", profileHandler.Update)
	me.Put("/password", profileHandler.ChangePassword)
	me.Post("/avatar", profileHandler.UploadAvatar)

	// Solicitudes de servicio (autenticado; el caso de uso valida dueño o personal)
	services := api.Group("/service-requests", authMW)
	services.Post("/", serviceHandler.Submit)
	services.Get("/me", serviceHandler.ListMine)
	services.Get("/:id/receipt.pdf", serviceHandler.ReceiptPDF)
	services.Get("/:id", serviceHandler.Get)

	// Panel
	dash := api.Group("/dashboard", authMW)
	dash.Get("/summary", staffOnly, dashboardHandler.GetSummary)
	dash.Get("/activities", adminOnly, dashboardHandler.Activities)

	dash.Get("/services", staffOnly, serviceHandler.Board)
	dash.Patch("/services/:id/status", staffOnly, serviceHandler.Transition)

	dash.Post("/products", adminOnly, productHandler.Create)
	dash.Post("/products/images", adminOnly, productHandler.UploadImage)
	dash.Patch("/products/:id", adminOnly, productHandler.Update)
	dash.Put("/products/:id/stock", adminOnly, productHandler.UpdateStock)
	dash.Delete("/products/:id", adminOnly, productHandler.Delete)

	dash.Get("/users", adminOnly, userHandler.List)
	dash.Patch("/users/:id/role", adminOnly, userHandler.UpdateRole)
	dash.Delete("/users/:id", adminOnly, userHandler.Delete)

	dash.Get("/contacts", adminOnly, contactHandler.List)
	dash.Delete("/contacts/:id", adminOnly, contactHandler.Delete)

	api.Use(notFound)
}
