package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/usecase"
)

// UserHandler gestión de cuentas. Todo el grupo pasa por RequireAdmin.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	sess := GetSession(c)
	out, err := h.uc.List(c.Context(), sess.BackendToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cuenta (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	sess := GetSession(c)
	out, err := h.uc.Create(c.Context(), sess.BackendToken, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cuenta (solo ADMIN, parcial)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateUserRequest
	if ok, err := decodeBody(c, &in); !ok {
		return err
	}
	sess := GetSession(c)
	out, err := h.uc.Update(c.Context(), sess.BackendToken, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sess := GetSession(c)
	if sess.User.ID == id {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SELF_DELETE", Message: "no puede eliminar su propia cuenta activa"})
	}
	if err := h.uc.Delete(c.Context(), sess.BackendToken, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
