package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/chorok-lab/carbon-exchange/internal/handler"
	"github.com/chorok-lab/carbon-exchange/internal/identity"
	appmw "github.com/chorok-lab/carbon-exchange/internal/middleware"
	"github.com/chorok-lab/carbon-exchange/internal/repository"
	"github.com/chorok-lab/carbon-exchange/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries the injected collaborators: one identity provider and one set
// of stores, either gorm-backed or in-memory.
type Deps struct {
	Provider      identity.Provider
	ListingRepo   repository.ListingRepository
	TxRepo        repository.TransactionRepository
	ProfileRepo   repository.ProfileRepository
	AllowedOrigin string
	SHA           string
	BuildTime     string
}

type Server struct {
	e *echo.Echo
}

func New(d Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			if d.AllowedOrigin == "" {
				return false, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			return strings.EqualFold(origin, d.AllowedOrigin), nil
		},
	}))

	profileSvc := service.NewProfileService(d.ProfileRepo)
	listingSvc := service.NewListingService(d.ListingRepo, d.ProfileRepo)
	purchaseSvc := service.NewPurchaseService(d.ListingRepo, d.TxRepo, d.ProfileRepo)

	authHandler := handler.NewAuthHandler(d.Provider, profileSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	listingHandler := handler.NewListingHandler(listingSvc, profileSvc)
	purchaseHandler := handler.NewPurchaseHandler(purchaseSvc, profileSvc)

	authMw := appmw.NewAuthMiddleware(d.Provider)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    d.SHA,
			"build_time": d.BuildTime,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/signin", authHandler.Signin)
	api.POST("/auth/signout", authHandler.Signout, authMw.RequireAuth)
	api.GET("/listings", listingHandler.List)
	api.POST("/listings", listingHandler.Create, authMw.RequireAuth)
	api.DELETE("/listings/:id", listingHandler.Retire, authMw.RequireAuth)
	api.POST("/listings/:id/purchase", purchaseHandler.Purchase, authMw.RequireAuth)
	api.GET("/me", profileHandler.Me, authMw.RequireAuth)
	api.PUT("/me", profileHandler.UpdateMe, authMw.RequireAuth)
	api.GET("/me/listings", listingHandler.ListMine, authMw.RequireAuth)
	api.GET("/me/transactions", purchaseHandler.ListMine, authMw.RequireAuth)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
