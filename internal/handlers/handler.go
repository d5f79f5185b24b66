package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/arzan03/storefront/internal/config"
	"github.com/arzan03/storefront/internal/middleware"
	"github.com/arzan03/storefront/internal/models"
	"github.com/arzan03/storefront/internal/services"
)

// Handler holds the services every route handler delegates to.
type Handler struct {
	auth     *services.AuthService
	users    *services.UserService
	products *services.ProductService
	reviews  *services.ReviewService
	orders   *services.OrderService
	cookie   config.CookieConfig
	validate *validator.Validate
}

// Services lists the dependencies New wires into a Handler.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Products *services.ProductService
	Reviews  *services.ReviewService
	Orders   *services.OrderService
}

// New creates a Handler with a validator that reports JSON field names.
func New(svc Services, cookie config.CookieConfig) *Handler {
	return &Handler{
		auth:     svc.Auth,
		users:    svc.Users,
		products: svc.Products,
		reviews:  svc.Reviews,
		orders:   svc.Orders,
		cookie:   cookie,
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into out and validates it.
func (h *Handler) bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// caller returns the authenticated identity. Routes reaching it are always
// behind an authenticating policy.
func caller(c *fiber.Ctx) (models.TokenUser, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return models.TokenUser{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return user, nil
}

// ErrorHandler renders every error returned from a route as {"error": msg}.
// Service errors carry their own status kind; anything else is logged and
// answered with a generic 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		var se *services.Error
		if errors.As(err, &se) {
			return c.Status(statusFor(se)).JSON(fiber.Map{"error": se.Error()})
		}

		log.Error("Unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Something went wrong, please try again later"})
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
