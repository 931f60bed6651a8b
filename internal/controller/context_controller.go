package controller

import (
	"stayops-be/internal/dto"
	"stayops-be/internal/pkg/serverutils"
	"stayops-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContextController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
	Switch(ctx *fiber.Ctx) error
}

type contextController struct {
	resolverService service.IResolverService
}

func NewContextController(resolverService service.IResolverService) IContextController {
	return &contextController{
		resolverService: resolverService,
	}
}

func (c *contextController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/context/v1")

	// Resolve serves anonymous sessions too; the guard answers login_redirect
	// for them instead of rejecting the call.
	h.Get("resolve", serverutils.OptionalJwtMiddleware, c.Resolve)
	h.Put("active-property", serverutils.JwtMiddleware, c.Switch)
}

func (c *contextController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveContextRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userId := serverutils.UserId(ctx)

	res := c.resolverService.ResolveContext(ctx.Context(), userId, req.Path)
	return ctx.JSON(serverutils.SuccessResponse("Context resolved", res))
}

func (c *contextController) Switch(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.SwitchPropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	propertyId, err := uuid.Parse(req.PropertyId)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
	}

	res, err := c.resolverService.SwitchProperty(ctx.Context(), userId, propertyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Property switched", res))
}
