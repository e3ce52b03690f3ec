package middleware

import (
	"greenmart-api/internal/utils"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID  = "user_id"
	ContextAdminID = "admin_id"

	roleAdmin = "admin"
)

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
	}

	return token, nil
}

// UserAuth accepts any valid token and exposes the principal as user_id.
func UserAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := utils.ParseToken(secret, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextUserID, claims.PrincipalID)
			return next(c)
		}
	}
}

// AdminAuth additionally requires the admin role claim. Every /api/admin
// route goes through this, without exception.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := utils.ParseToken(secret, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.Role != roleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			c.Set(ContextAdminID, claims.PrincipalID)
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}

func AdminID(c echo.Context) string {
	id, _ := c.Get(ContextAdminID).(string)
	return id
}
