package handlers

import (
	"strings"

	"github.com/ciet-hostel/gatepass-svc/internal/api/rest/middleware"
	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/dto"
	"github.com/ciet-hostel/gatepass-svc/internal/helper"
	"github.com/ciet-hostel/gatepass-svc/internal/helper/utils"
	"github.com/ciet-hostel/gatepass-svc/internal/services"
	"github.com/gofiber/fiber/v2"
)

type GatePassHandler struct {
	svc      services.GatePassService
	accounts services.AccountService
	auth     helper.Auth
}

func NewGatePassHandler(svc services.GatePassService, accounts services.AccountService, auth helper.Auth) *GatePassHandler {
	return &GatePassHandler{svc: svc, accounts: accounts, auth: auth}
}

func (h *GatePassHandler) SetupRoutes(app *fiber.App, authHandler *AuthHandler) {
	api := app.Group("/api")

	// =========================
	// AUTH (public)
	// =========================
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// =========================
	// GATE PASSES
	// =========================
	passes := api.Group("/passes", middleware.AuthMiddleware(h.auth))

	passes.Post("/", middleware.RoleOnly(domain.RoleStudent), h.Submit)
	passes.Get("/history", middleware.RoleOnly(domain.RoleStudent), h.History)

	passes.Get("/pending", middleware.ApproverOnly(), h.Pending)
	passes.Get("/pending/count", middleware.ApproverOnly(), h.PendingCount)
	passes.Post("/:id/approve", middleware.ApproverOnly(), h.Approve)
	passes.Post("/:id/reject", middleware.ApproverOnly(), h.Reject)

	passes.Get("/:id", h.Get)

	// =========================
	// ADMIN
	// =========================
	admin := api.Group("/admin", middleware.AuthMiddleware(h.auth), middleware.RoleOnly(domain.RoleAdmin))
	admin.Get("/passes", h.AdminListPasses)
	admin.Get("/students", h.AdminListStudents)
	admin.Patch("/students/:rollNo/parent-phone", h.AdminUpdateParentPhone)
}

func (h *GatePassHandler) Submit(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var requestBody dto.SubmitGatePassRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	student, err := h.accounts.GetStudent(user.Subject)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	pass, err := h.svc.Submit(student, requestBody)
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, pass)
}

func (h *GatePassHandler) History(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	passes, err := h.svc.HistoryFor(user.Subject)
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, passes)
}

func (h *GatePassHandler) Pending(ctx *fiber.Ctx) error {
	stage, err := h.stageOf(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	}

	passes, err := h.svc.PendingFor(stage)
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, passes)
}

func (h *GatePassHandler) PendingCount(ctx *fiber.Ctx) error {
	stage, err := h.stageOf(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusForbidden, err.Error())
	}

	n, err := h.svc.PendingCountFor(stage)
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.PendingCountResponse{Count: n})
}

func (h *GatePassHandler) Approve(ctx *fiber.Ctx) error {
	return h.decide(ctx, domain.DecisionApproved)
}

func (h *GatePassHandler) Reject(ctx *fiber.Ctx) error {
	return h.decide(ctx, domain.DecisionRejected)
}

func (h *GatePassHandler) decide(ctx *fiber.Ctx, decision domain.Decision) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	// The acting stage comes from the caller's role, never from the body, so
	// an approver cannot decide for another stage.
	stage, ok := domain.StageForRole(domain.StaffRole(user.Role))
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusForbidden, "role cannot decide gate passes")
	}

	var requestBody dto.DecisionRequest
	if err := ctx.BodyParser(&requestBody); err != nil && decision == domain.DecisionRejected {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if decision == domain.DecisionRejected && strings.TrimSpace(requestBody.Comments) == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "a rejection reason is required")
	}

	pass, err := h.svc.RecordDecision(ctx.Params("id"), stage, decision, user.Name, requestBody.Comments)
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, pass)
}

func (h *GatePassHandler) Get(ctx *fiber.Ctx) error {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	pass, err := h.svc.Get(ctx.Params("id"))
	if err != nil {
		return respondDomainError(ctx, err)
	}

	// Students may only read their own passes.
	if user.Role == string(domain.RoleStudent) && pass.StudentID != user.Subject {
		return utils.ResponseError(ctx, fiber.StatusForbidden, "not your gate pass")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, pass)
}

func (h *GatePassHandler) AdminListPasses(ctx *fiber.Ctx) error {
	passes, err := h.svc.ListAll()
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, passes)
}

func (h *GatePassHandler) AdminListStudents(ctx *fiber.Ctx) error {
	students, err := h.accounts.ListStudents()
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, students)
}

func (h *GatePassHandler) AdminUpdateParentPhone(ctx *fiber.Ctx) error {
	var requestBody dto.UpdateParentPhoneRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	cred, err := h.accounts.UpdateParentPhone(ctx.Params("rollNo"), requestBody.ParentPhoneNumber)
	if err != nil {
		return respondDomainError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cred)
}

func (h *GatePassHandler) stageOf(ctx *fiber.Ctx) (domain.Stage, error) {
	user, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return "", err
	}
	stage, ok := domain.StageForRole(domain.StaffRole(user.Role))
	if !ok {
		return "", fiber.NewError(fiber.StatusForbidden, "role has no approval queue")
	}
	return stage, nil
}
