package middleware

import (
	"context"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/storefront/internal/models"
)

// OwnerResolver returns the id of the user owning the resource named by the
// :id path parameter.
type OwnerResolver func(ctx context.Context, resourceID string) (string, error)

// SelfResolver is for routes whose :id is itself a user id.
func SelfResolver(_ context.Context, id string) (string, error) {
	return id, nil
}

// Policy is the access requirement declared for one route.
type Policy struct {
	Name         string
	Authenticate bool
	// AllowRoles, when set, admits only these roles.
	AllowRoles []string
	// Owner, when set, admits admins and the resource owner.
	Owner OwnerResolver
}

var Public = Policy{Name: "public"}

// Authenticated admits any caller with a valid token.
func Authenticated() Policy {
	return Policy{Name: "authenticated", Authenticate: true}
}

// RequireRoles admits callers whose role is listed.
func RequireRoles(roles ...string) Policy {
	return Policy{Name: "roles", Authenticate: true, AllowRoles: roles}
}

// OwnerOrAdmin admits admins and the user resolve reports as owner.
func OwnerOrAdmin(resolve OwnerResolver) Policy {
	return Policy{Name: "owner-or-admin", Authenticate: true, Owner: resolve}
}

// Enforce evaluates p before the route handler runs. Authentication and
// authorization failures answer 401; resolver errors (unknown or malformed
// resource ids) go to the app error handler.
func (a *Authenticator) Enforce(p Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !p.Authenticate {
			return c.Next()
		}
		if !a.authenticate(c) {
			return unauthorized(c)
		}
		user, _ := CurrentUser(c)

		if len(p.AllowRoles) > 0 && !slices.Contains(p.AllowRoles, user.Role) {
			return unauthorized(c)
		}

		if p.Owner != nil && user.Role != models.RoleAdmin {
			owner, err := p.Owner(c.UserContext(), c.Params("id"))
			if err != nil {
				return err
			}
			if owner != user.UserID {
				return c.Status(fiber.StatusUnauthorized).
					JSON(fiber.Map{"error": "You are not authorized to perform this action"})
			}
		}

		return c.Next()
	}
}
