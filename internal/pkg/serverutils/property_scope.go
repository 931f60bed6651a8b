package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PropertyAccessChecker answers whether a user may act on a property.
type PropertyAccessChecker interface {
	UserOwnsProperty(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
}

// PropertyScopeMiddleware guards every route mounted under :propertyId.
// It runs after JwtMiddleware, verifies ownership, and stores the parsed id
// in Locals("property_id"). Verification failures deny access rather than
// letting the request through.
func PropertyScopeMiddleware(checker PropertyAccessChecker) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		propertyID, err := uuid.Parse(ctx.Params("propertyId"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
		}

		userID := UserId(ctx)
		if userID == uuid.Nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing user context")
		}

		owns, err := checker.UserOwnsProperty(ctx.Context(), userID, propertyID)
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Property access could not be verified")
		}
		if !owns {
			return fiber.NewError(fiber.StatusForbidden, "Property does not belong to this account")
		}

		ctx.Locals("property_id", propertyID.String())
		return ctx.Next()
	}
}

// PropertyId reads the property id stored by PropertyScopeMiddleware.
func PropertyId(ctx *fiber.Ctx) uuid.UUID {
	raw, _ := ctx.Locals("property_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
