package controller

import (
	"stayops-be/internal/dto"
	"stayops-be/internal/pkg/serverutils"
	"stayops-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRequestController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Acknowledge(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	AddNote(ctx *fiber.Ctx) error
	ListNotes(ctx *fiber.Ctx) error
	DeleteNote(ctx *fiber.Ctx) error
}

type requestController struct {
	requestService  service.IRequestService
	propertyService service.IPropertyService
}

func NewRequestController(requestService service.IRequestService, propertyService service.IPropertyService) IRequestController {
	return &requestController{
		requestService:  requestService,
		propertyService: propertyService,
	}
}

func (c *requestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/property/v1/:propertyId/requests")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.PropertyScopeMiddleware(c.propertyService))
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Post(":id/ack", c.Acknowledge)
	h.Post(":id/complete", c.Complete)
	h.Get(":id/notes", c.ListNotes)
	h.Post(":id/notes", c.AddNote)
	h.Delete(":id/notes/:noteId", c.DeleteNote)
}

func (c *requestController) List(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	var query dto.ListRequestsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.requestService.List(ctx.Context(), propertyId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get requests", res))
}

func (c *requestController) Show(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	res, err := c.requestService.Show(ctx.Context(), propertyId, requestId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get request", res))
}

func (c *requestController) Update(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	var req dto.UpdateRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = requestId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.requestService.Update(ctx.Context(), propertyId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Request updated", res))
}

func (c *requestController) Acknowledge(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	res, err := c.requestService.Acknowledge(ctx.Context(), propertyId, requestId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Request acknowledged", res))
}

func (c *requestController) Complete(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	res, err := c.requestService.Complete(ctx.Context(), propertyId, requestId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Request completed", res))
}

func (c *requestController) AddNote(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)
	userId := serverutils.UserId(ctx)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	var req dto.AddNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.requestService.AddNote(ctx.Context(), propertyId, requestId, userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Note added", res))
}

func (c *requestController) ListNotes(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}

	res, err := c.requestService.ListNotes(ctx.Context(), propertyId, requestId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get notes", res))
}

func (c *requestController) DeleteNote(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}
	noteId, err := uuid.Parse(ctx.Params("noteId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	if err := c.requestService.DeleteNote(ctx.Context(), propertyId, requestId, noteId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Note deleted", nil))
}
