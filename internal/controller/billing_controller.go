package controller

import (
	"stayops-be/internal/dto"
	"stayops-be/internal/pkg/serverutils"
	"stayops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Notification(ctx *fiber.Ctx) error
	SubscriptionStatus(ctx *fiber.Ctx) error
}

type billingController struct {
	billingService service.IBillingService
}

func NewBillingController(billingService service.IBillingService) IBillingController {
	return &billingController{
		billingService: billingService,
	}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/billing/v1")
	h.Get("plans", c.GetPlans)
	// The gateway posts here; auth is the signature inside the body.
	h.Post("notification", c.Notification)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Post("checkout", c.Checkout)
	protected.Get("subscription", c.SubscriptionStatus)
}

func (c *billingController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.billingService.GetPlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get plans", res))
}

func (c *billingController) Checkout(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.billingService.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *billingController) Notification(ctx *fiber.Ctx) error {
	var req dto.PaymentNotificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.billingService.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Notification processed", nil))
}

func (c *billingController) SubscriptionStatus(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.billingService.GetSubscriptionStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get subscription", res))
}
