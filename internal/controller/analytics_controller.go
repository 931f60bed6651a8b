package controller

import (
	"stayops-be/internal/dto"
	"stayops-be/internal/pkg/serverutils"
	"stayops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	Report(ctx *fiber.Ctx) error
}

type analyticsController struct {
	analyticsService service.IAnalyticsService
	propertyService  service.IPropertyService
}

func NewAnalyticsController(analyticsService service.IAnalyticsService, propertyService service.IPropertyService) IAnalyticsController {
	return &analyticsController{
		analyticsService: analyticsService,
		propertyService:  propertyService,
	}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/property/v1/:propertyId/analytics")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.PropertyScopeMiddleware(c.propertyService))
	h.Get("", c.Report)
}

func (c *analyticsController) Report(ctx *fiber.Ctx) error {
	propertyId := serverutils.PropertyId(ctx)

	var query dto.AnalyticsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.analyticsService.Report(ctx.Context(), propertyId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get analytics", res))
}
