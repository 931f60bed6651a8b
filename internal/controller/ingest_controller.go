package controller

import (
	"crypto/subtle"

	"stayops-be/internal/dto"
	"stayops-be/internal/pkg/serverutils"
	"stayops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	InboundSms(ctx *fiber.Ctx) error
	Enrichment(ctx *fiber.Ctx) error
}

type ingestController struct {
	ingestService service.IIngestService
	sharedSecret  string
}

func NewIngestController(ingestService service.IIngestService, sharedSecret string) IIngestController {
	return &ingestController{
		ingestService: ingestService,
		sharedSecret:  sharedSecret,
	}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ingest/v1")
	h.Use(c.requireSecret)
	h.Post("sms", c.InboundSms)
	h.Post("enrichment", c.Enrichment)
}

// requireSecret gates machine-to-machine callers. These routes carry no user
// token; the provider authenticates with a shared header instead.
func (c *ingestController) requireSecret(ctx *fiber.Ctx) error {
	if c.sharedSecret == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Ingest is not configured")
	}
	provided := ctx.Get("X-Ingest-Secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(c.sharedSecret)) != 1 {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid ingest secret")
	}
	return ctx.Next()
}

func (c *ingestController) InboundSms(ctx *fiber.Ctx) error {
	var req dto.InboundSmsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestService.EnqueueInboundSms(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Message queued", res))
}

func (c *ingestController) Enrichment(ctx *fiber.Ctx) error {
	var req dto.EnrichmentCallbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.ingestService.ApplyEnrichment(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Enrichment applied", nil))
}
