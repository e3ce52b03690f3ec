package middleware

import (
	"greenmart-api/internal/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	return rec, mw(next)(c)
}

func TestUserAuth_ValidToken(t *testing.T) {
	token, err := utils.GenerateToken(secret, "user-1", "", time.Hour)
	require.NoError(t, err)

	rec, err := doRequest(t, UserAuth(secret), "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserAuth_MissingHeader(t *testing.T) {
	_, err := doRequest(t, UserAuth(secret), "")

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestUserAuth_MalformedHeader(t *testing.T) {
	_, err := doRequest(t, UserAuth(secret), "Token abc")

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestUserAuth_ExpiredToken(t *testing.T) {
	token, err := utils.GenerateToken(secret, "user-1", "", -time.Hour)
	require.NoError(t, err)

	_, err = doRequest(t, UserAuth(secret), "Bearer "+token)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestUserAuth_WrongSecret(t *testing.T) {
	token, err := utils.GenerateToken("other-secret", "user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = doRequest(t, UserAuth(secret), "Bearer "+token)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAdminAuth_RequiresRole(t *testing.T) {
	// a plain user token must not pass the admin gate
	userToken, err := utils.GenerateToken(secret, "user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = doRequest(t, AdminAuth(secret), "Bearer "+userToken)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	adminToken, err := utils.GenerateToken(secret, "admin-1", "admin", time.Hour)
	require.NoError(t, err)

	rec, err := doRequest(t, AdminAuth(secret), "Bearer "+adminToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
