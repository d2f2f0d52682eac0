package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/marceloamor/reading-list-manager/internal/config"
	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/handler"
	"github.com/marceloamor/reading-list-manager/internal/session"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions session.Store,
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	statsHandler *handler.StatsHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/session", authHandler.Session)

	// Anonymised aggregation, no session required. Registered before the
	// protected group so the static paths win over /books/:id.
	api.GET("/books/public", statsHandler.Community)
	api.GET("/books/public/search", statsHandler.Search)

	if cfg.DevMode {
		api.GET("/seed/demo", seedHandler.SeedDemo)
	}

	// Protected routes (require a live session)
	books := api.Group("/books", RequireSession(sessions, cfg.DevMode))
	books.GET("", bookHandler.List)
	books.POST("", bookHandler.Create)
	books.GET("/:id", bookHandler.Get)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)
}

// RequireSession resolves the session cookie against the store and rejects
// the request when no live session exists. On success the caller's account id
// and username are stored on the echo context.
func RequireSession(sessions session.Store, dev bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			unauthenticated := apperrors.New(apperrors.KindAuthentication, "authentication required")

			cookie, err := c.Cookie(handler.SessionCookieName)
			if err != nil || cookie.Value == "" {
				httpErr := apperrors.MapErrorToHTTP(unauthenticated, dev)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			sess, err := sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(apperrors.NewStorage(err), dev)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if sess == nil {
				httpErr := apperrors.MapErrorToHTTP(unauthenticated, dev)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(handler.ContextAccountID, sess.AccountID)
			c.Set(handler.ContextUsername, sess.Username)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
