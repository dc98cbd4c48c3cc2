package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/redis/go-redis/v9"

	"github.com/gaibarra/33fitstudio/internal/account"
	"github.com/gaibarra/33fitstudio/internal/backend"
	"github.com/gaibarra/33fitstudio/internal/catalog"
	"github.com/gaibarra/33fitstudio/internal/commerce"
	"github.com/gaibarra/33fitstudio/internal/config"
	"github.com/gaibarra/33fitstudio/internal/reports"
	"github.com/gaibarra/33fitstudio/internal/scheduling"
	"github.com/gaibarra/33fitstudio/internal/session"
	"github.com/gaibarra/33fitstudio/internal/studio"
	"github.com/gaibarra/33fitstudio/internal/users"
	"github.com/gaibarra/33fitstudio/internal/web"
)

type Server struct {
	router *gin.Engine
	config *config.Config
	http   *http.Server
}

func New(cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))
	router.SetHTMLTemplate(web.Templates())

	api := backend.New(cfg.ResolveAPIBase("localhost"), cfg.StudioID, cfg.APITimeout)

	var store session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		store = session.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	sessions := session.NewManager(store, cfg.CookieName)

	accountClient := account.NewClient(api)
	catalogClient := catalog.NewClient(api)
	studioClient := studio.NewClient(api)
	schedulingClient := scheduling.NewClient(api)
	commerceClient := commerce.NewClient(api)
	usersClient := users.NewClient(api)

	accountHandler := account.NewHandler(accountClient, sessions)
	catalogHandler := catalog.NewHandler(catalogClient)
	studioHandler := studio.NewHandler(studioClient, cfg.StudioID)
	schedulingHandler := scheduling.NewHandler(schedulingClient, catalogClient, studioClient, sessions)
	commerceHandler := commerce.NewHandler(commerceClient, catalogClient, schedulingClient, sessions)
	usersHandler := users.NewHandler(usersClient, sessions)
	reportsHandler := reports.NewHandler(schedulingClient, catalogClient, sessions)

	identity := account.NewMiddleware(sessions, accountClient)
	router.Use(identity.Resolve())

	router.GET("/", Home)
	router.GET("/clases", catalogHandler.ShowClasses)
	router.GET("/coaches", catalogHandler.ShowCoaches)
	router.GET("/precios", catalogHandler.ShowPrices)
	router.GET("/bio", studioHandler.ShowBio)

	authLimit := RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router.GET("/portal", accountHandler.ShowLogin)
	router.POST("/portal", authLimit, accountHandler.Login)
	router.GET("/registro", accountHandler.ShowRegister)
	router.POST("/registro", authLimit, accountHandler.Register)
	router.POST("/salir", accountHandler.Logout)

	protected := router.Group("/")
	protected.Use(account.Require())
	{
		protected.GET("/horarios", schedulingHandler.ShowSchedule)
		protected.POST("/horarios/reservar", schedulingHandler.Book)
		protected.POST("/horarios/cancelar", schedulingHandler.Cancel)

		protected.GET("/portal/dashboard", commerceHandler.ShowDashboard)
		protected.GET("/portal/compras", commerceHandler.ShowPurchases)
		protected.POST("/portal/compras", commerceHandler.CreateOrder)
		protected.POST("/portal/compras/:id/pagar", commerceHandler.PayOrder)
		protected.POST("/portal/compras/:id/eliminar", commerceHandler.DeleteOrder)

		protected.GET("/portal/perfil", accountHandler.ShowProfile)
		protected.POST("/portal/perfil", accountHandler.UpdateProfile)
	}

	admin := router.Group("/admin")
	admin.Use(account.Require(), account.RequireOperator())
	{
		admin.GET("", AdminHome)

		admin.GET("/agenda", schedulingHandler.ShowAgenda)
		admin.POST("/agenda", schedulingHandler.CreateSession)
		admin.POST("/agenda/:id", schedulingHandler.UpdateSession)
		admin.POST("/agenda/:id/eliminar", schedulingHandler.DeleteSession)

		admin.GET("/asistencia", schedulingHandler.ShowAttendance)
		admin.POST("/asistencia/checkin", schedulingHandler.CheckIn)
		admin.POST("/asistencia/checkin/eliminar", schedulingHandler.UndoCheckIn)
		admin.POST("/asistencia/no_show", schedulingHandler.MarkNoShow)

		admin.GET("/catalogo/clases", catalogHandler.AdminClassTypes)
		admin.POST("/catalogo/clases", catalogHandler.CreateClassType)
		admin.POST("/catalogo/clases/:id", catalogHandler.UpdateClassType)
		admin.POST("/catalogo/clases/:id/eliminar", catalogHandler.DeleteClassType)
		admin.GET("/catalogo/coaches", catalogHandler.AdminInstructors)
		admin.POST("/catalogo/coaches", catalogHandler.CreateInstructor)
		admin.POST("/catalogo/coaches/:id", catalogHandler.UpdateInstructor)
		admin.POST("/catalogo/coaches/:id/eliminar", catalogHandler.DeleteInstructor)
		admin.GET("/catalogo/productos", catalogHandler.AdminProducts)
		admin.POST("/catalogo/productos", catalogHandler.CreateProduct)
		admin.POST("/catalogo/productos/:id", catalogHandler.UpdateProduct)
		admin.POST("/catalogo/productos/:id/eliminar", catalogHandler.DeleteProduct)

		admin.GET("/clientes", usersHandler.ShowUsers)
		admin.POST("/clientes/:id/activar", usersHandler.ToggleActive)
		admin.POST("/clientes/:id/rol", usersHandler.AddRole)
		admin.POST("/clientes/:id/rol/quitar", usersHandler.RemoveRole)

		admin.GET("/ordenes", commerceHandler.AdminOrders)
		admin.POST("/ordenes/:id/estado", commerceHandler.SetOrderStatus)

		admin.GET("/reportes", reportsHandler.ShowReports)
		admin.GET("/reportes/csv/:tipo", reportsHandler.DownloadCSV)

		admin.GET("/sedes", studioHandler.AdminLocations)
		admin.POST("/sedes", studioHandler.CreateLocation)
		admin.POST("/sedes/:id", studioHandler.UpdateLocation)
		admin.POST("/sedes/:id/eliminar", studioHandler.DeleteLocation)

		admin.GET("/bio", studioHandler.AdminLinkButtons)
		admin.POST("/bio", studioHandler.CreateLinkButton)
		admin.POST("/bio/:id", studioHandler.UpdateLinkButton)
		admin.POST("/bio/:id/eliminar", studioHandler.DeleteLinkButton)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.NoRoute(NotFound)

	return &Server{router: router, config: cfg}
}

// Start serves the app with the CSRF layer wrapped around the whole engine so
// every mutating form post is checked.
func (s *Server) Start(port string) error {
	protect := csrf.Protect(
		[]byte(s.config.CSRFKey),
		csrf.Path("/"),
		csrf.Secure(os.Getenv("CSRF_SECURE") != ""),
	)
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: protect(s.router),
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
