package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/user"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/api"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/middleware"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	vehicleHandler *api.VehicleHandler,
	branchHandler *api.BranchHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, reservationHandler, paymentHandler, vehicleHandler, branchHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	paymentHandler *api.PaymentHandler,
	vehicleHandler *api.VehicleHandler,
	branchHandler *api.BranchHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "", Handler: vehicleHandler.ListVehicles},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: vehicleHandler.CheckAvailability},
			})
		}

		branches := apiGroup.Group("/branches")
		{
			addRoutes(branches, []route{
				{Method: http.MethodGet, Path: "", Handler: branchHandler.ListBranches},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			staffOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleStaff)}
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodPost, Path: "/checkout", Handler: reservationHandler.Checkout},
				{Method: http.MethodGet, Path: "/myreservations", Handler: reservationHandler.GetMyReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPut, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
				{Method: http.MethodPut, Path: "/:id/pickup", Handler: reservationHandler.PickUpReservation, Mw: staffOnly},
				{Method: http.MethodPut, Path: "/:id/return", Handler: reservationHandler.ReturnReservation, Mw: staffOnly},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/:reservationId", Handler: paymentHandler.Pay},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
