package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/omnistock-hub/internal/application/auth"
	"github.com/jhoicas/omnistock-hub/internal/application/dto"
)

// AuthHandler maneja login, logout y el usuario de la sesión.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (destruye el estado del tracker)
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess != nil {
		h.uc.Logout(sess.ID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario de la sesión activa
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	return c.JSON(h.uc.Me(sess))
}
