package handlers

import (
	"errors"

	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/dto"
	"github.com/ciet-hostel/gatepass-svc/internal/helper/utils"
	"github.com/ciet-hostel/gatepass-svc/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc services.AccountService
}

func NewAuthHandler(svc services.AccountService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	cred, err := h.svc.Register(requestBody)
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, cred)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	resp, err := h.svc.Login(requestBody)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return respondDomainError(ctx, err)
		}
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid credentials")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses.
func respondDomainError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateRollNo),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrStageOutOfOrder):
		return utils.ResponseError(ctx, fiber.StatusConflict, err.Error())
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
