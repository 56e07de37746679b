package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/session"
	"github.com/jhoicas/omnistock-hub/pkg/jwt"
)

// LocalSession key de la sesión activa en c.Locals.
const LocalSession = "session"

// AuthMiddleware valida el Bearer Token local y resuelve la sesión viva.
// Un token bien firmado cuya sesión ya no existe (logout o reinicio del
// proceso) se rechaza igual: sin sesión no hay Entry Store ni backend token.
func AuthMiddleware(jwtSecret string, sessions *session.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		_, sessionID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		sess, ok := sessions.Get(sessionID)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión expirada, inicie sesión de nuevo"})
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// RequireAdmin corta con 403 si la sesión no es de un ADMIN. Debe ir
// después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		if !sess.User.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol ADMIN"})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) *session.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
