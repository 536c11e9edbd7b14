package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
	"github.com/innsight/hotel-admin/pkg/logger"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

var errInvalidToken = errors.New("invalid session token")

// Session resolves the caller's JWT from the Authorization header or the
// session cookie and stores the session in the request context. It never
// rejects: a missing or invalid token leaves the request anonymous, and the
// gate decides what an anonymous caller may do.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				if cookie, err := c.Cookie(SessionCookie); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				return next(c)
			}

			req := c.Request()
			s, err := ParseSession(token, jwtSecret)
			if err != nil {
				l := logger.Ctx(req.Context(), zerolog.Nop())
				l.Debug().Err(err).Msg("session rejected")
				return next(c)
			}

			c.SetRequest(req.WithContext(auth.WithSession(req.Context(), s)))
			return next(c)
		}
	}
}

// ParseSession verifies an HS256 token and maps its claims onto a session.
func ParseSession(token, jwtSecret string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, errInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	rawRole, _ := claims["role"].(string)
	role, ok := domain.ParseRole(rawRole)
	if sub == "" || !ok {
		return nil, errInvalidToken
	}
	return &domain.Session{UserID: sub, Email: email, Name: name, Role: role}, nil
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
