package middleware

import (
	"strings"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/dto"
	"github.com/ciet-hostel/gatepass-svc/internal/helper"
	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("user", user)
		return ctx.Next()
	}
}

// RoleOnly admits only the listed roles; run it after AuthMiddleware.
func RoleOnly(roles ...domain.StaffRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(dto.AuthClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		for _, role := range roles {
			if user.Role == string(role) {
				return ctx.Next()
			}
		}

		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "forbidden for role " + user.Role,
		})
	}
}

// ApproverOnly admits the three approval stages (tutor, warden, hod).
func ApproverOnly() fiber.Handler {
	return RoleOnly(domain.RoleTutor, domain.RoleWarden, domain.RoleHod)
}
