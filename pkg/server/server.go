package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hondanaapp/hondana/pkg/auth"
	"github.com/hondanaapp/hondana/pkg/binder"
	"github.com/hondanaapp/hondana/pkg/booklists"
	"github.com/hondanaapp/hondana/pkg/catalog"
	"github.com/hondanaapp/hondana/pkg/config"
	"github.com/hondanaapp/hondana/pkg/errcodes"
	"github.com/hondanaapp/hondana/pkg/events"
	"github.com/hondanaapp/hondana/pkg/favorites"
	"github.com/hondanaapp/hondana/pkg/follows"
	"github.com/hondanaapp/hondana/pkg/shelf"
	"github.com/hondanaapp/hondana/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB, broker *events.Broker) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))

	health.RegisterRoutes(e)

	authService := auth.RegisterRoutes(e, db, cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	userService := users.RegisterRoutes(e, db, cfg.DataDir, authMiddleware)
	shelf.RegisterRoutes(e, db, broker, authMiddleware)
	booklists.RegisterRoutes(e, db, broker, authMiddleware)
	favorites.RegisterRoutes(e, db, authMiddleware)
	follows.RegisterRoutes(e, db, userService, authMiddleware)
	events.RegisterRoutes(e, broker, authMiddleware)

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogAppID)
	catalog.RegisterRoutes(e, catalogClient, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
