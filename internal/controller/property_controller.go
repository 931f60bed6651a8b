package controller

import (
	"stayops-be/internal/dto"
	"stayops-be/internal/pkg/serverutils"
	"stayops-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPropertyController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ListDepartments(ctx *fiber.Ctx) error
	CreateDepartment(ctx *fiber.Ctx) error
	UpdateDepartment(ctx *fiber.Ctx) error
	DeleteDepartment(ctx *fiber.Ctx) error
	ListContacts(ctx *fiber.Ctx) error
	CreateContact(ctx *fiber.Ctx) error
	DeleteContact(ctx *fiber.Ctx) error
}

type propertyController struct {
	propertyService service.IPropertyService
}

func NewPropertyController(propertyService service.IPropertyService) IPropertyController {
	return &propertyController{
		propertyService: propertyService,
	}
}

func (c *propertyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/property/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":propertyId", c.Show)
	h.Put(":propertyId", c.Update)
	h.Delete(":propertyId", c.Delete)

	// Department settings live under a property-scoped group: ownership is
	// verified once by the middleware, handlers trust the scope.
	scoped := h.Group(":propertyId", serverutils.PropertyScopeMiddleware(c.propertyService))
	scoped.Get("departments", c.ListDepartments)
	scoped.Post("departments", c.CreateDepartment)
	scoped.Put("departments/:departmentId", c.UpdateDepartment)
	scoped.Delete("departments/:departmentId", c.DeleteDepartment)

	// Guest directory: known numbers whose VIP/staff flags inbound
	// requests inherit.
	scoped.Get("contacts", c.ListContacts)
	scoped.Post("contacts", c.CreateContact)
	scoped.Delete("contacts/:contactId", c.DeleteContact)
}

func (c *propertyController) Create(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	var req dto.CreatePropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.propertyService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Property created", res))
}

func (c *propertyController) List(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	res, err := c.propertyService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get properties", res))
}

func (c *propertyController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	propertyId, err := uuid.Parse(ctx.Params("propertyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
	}

	res, err := c.propertyService.Show(ctx.Context(), userId, propertyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get property", res))
}

func (c *propertyController) Update(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	propertyId, err := uuid.Parse(ctx.Params("propertyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
	}

	var req dto.UpdatePropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = propertyId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.propertyService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Property updated", res))
}

func (c *propertyController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserId(ctx)

	propertyId, err := uuid.Parse(ctx.Params("propertyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
	}

	if err := c.propertyService.Delete(ctx.Context(), userId, propertyId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Property deleted", nil))
}

func (c *propertyController) ListDepartments(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	res, err := c.propertyService.ListDepartments(ctx.Context(), propertyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get departments", res))
}

func (c *propertyController) CreateDepartment(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	var req dto.DepartmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.propertyService.CreateDepartment(ctx.Context(), propertyId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Department created", res))
}

func (c *propertyController) UpdateDepartment(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	departmentId, err := uuid.Parse(ctx.Params("departmentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid department id")
	}

	var req dto.DepartmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.propertyService.UpdateDepartment(ctx.Context(), propertyId, departmentId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Department updated", res))
}

func (c *propertyController) DeleteDepartment(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	departmentId, err := uuid.Parse(ctx.Params("departmentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid department id")
	}

	if err := c.propertyService.DeleteDepartment(ctx.Context(), propertyId, departmentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Department deleted", nil))
}

func (c *propertyController) ListContacts(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	res, err := c.propertyService.ListContacts(ctx.Context(), propertyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get contacts", res))
}

func (c *propertyController) CreateContact(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	var req dto.ContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.propertyService.CreateContact(ctx.Context(), propertyId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Contact created", res))
}

func (c *propertyController) DeleteContact(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	contactId, err := uuid.Parse(ctx.Params("contactId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid contact id")
	}

	if err := c.propertyService.DeleteContact(ctx.Context(), propertyId, contactId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Contact deleted", nil))
}
