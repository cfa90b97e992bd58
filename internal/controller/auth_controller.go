package controller

import (
	"github.com/gofiber/fiber/v2"

	"fiberise-be/internal/dto"
	"fiberise-be/internal/pkg/apperror"
	"fiberise-be/internal/pkg/serverutils"
	"fiberise-be/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authRequired fiber.Handler)
	VerifyFirebaseToken(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	SendOtp(ctx *fiber.Ctx) error
	VerifyOtp(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{service: authService}
}

func (c *authController) RegisterRoutes(r fiber.Router, authRequired fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/verify-firebase-token", c.VerifyFirebaseToken)
	h.Post("/refresh", authRequired, c.Refresh)
	h.Get("/me", authRequired, c.Me)
	h.Post("/logout", authRequired, c.Logout)

	// Deprecated: OTP delivery moved to Firebase Phone Auth on the client
	h.Post("/send-otp", c.SendOtp)
	h.Post("/verify-otp", c.VerifyOtp)
}

func (c *authController) VerifyFirebaseToken(ctx *fiber.Ctx) error {
	var req dto.VerifyFirebaseTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Firebase ID token is required")
	}

	res, err := c.service.VerifyIdentity(ctx.Context(), req.IdToken)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"token":   res.Token,
		"user":    res.User,
	})
}

func (c *authController) Refresh(ctx *fiber.Ctx) error {
	claims, ok := serverutils.ClaimsFromCtx(ctx)
	if !ok {
		return apperror.Unauthorized("Access token required")
	}

	signed, err := c.service.Refresh(ctx.Context(), claims)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"token":   signed,
	})
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	claims, ok := serverutils.ClaimsFromCtx(ctx)
	if !ok {
		return apperror.Unauthorized("Access token required")
	}

	user, err := c.service.CurrentUser(ctx.Context(), claims)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// Logout is advisory: tokens are stateless and there is no denylist, so the
// client discards the token and the server just acknowledges.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (c *authController) SendOtp(ctx *fiber.Ctx) error {
	return apperror.Gone("This endpoint is deprecated. Please use Firebase Phone Authentication on the client-side.")
}

func (c *authController) VerifyOtp(ctx *fiber.Ctx) error {
	return apperror.Gone("This endpoint is deprecated. Please use Firebase Phone Authentication on the client-side.")
}
