package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fiberise-be/internal/pkg/token"
)

const ClaimsKey = "session_claims"

// JwtMiddleware guards bearer-token routes. Missing or expired tokens are a
// 401, a bad signature or malformed claims a 403, matching the auth taxonomy.
func JwtMiddleware(tokens *token.Service) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Access token required"})
		}

		claims, err := tokens.Verify(authHeader[7:])
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token expired"})
			}
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid token"})
		}

		ctx.Locals(ClaimsKey, claims)
		return ctx.Next()
	}
}

// ClaimsFromCtx returns the verified claims stored by JwtMiddleware.
func ClaimsFromCtx(ctx *fiber.Ctx) (*token.SessionClaims, bool) {
	claims, ok := ctx.Locals(ClaimsKey).(*token.SessionClaims)
	return claims, ok
}
