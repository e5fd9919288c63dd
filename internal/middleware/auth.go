package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// JWTAuth resolves the acting candidate or unit from a bearer token issued by
// the identity service and forwards identity as headers. Session issuing and
// refresh live outside this service.
func JWTAuth(secret string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			// Identity headers are set from verified claims only; inbound
			// values are dropped so a caller cannot smuggle in a role.
			ctx.Request.Header.Del("X-Actor-ID")
			ctx.Request.Header.Del("X-Actor-Role")

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if actorID, ok := claims["sub"].(string); ok {
					ctx.Request.Header.Set("X-Actor-ID", actorID)
				}
				if role, ok := claims["role"].(string); ok {
					ctx.Request.Header.Set("X-Actor-Role", role)
				}
			}

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
