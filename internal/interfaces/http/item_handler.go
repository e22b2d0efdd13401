package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/usecase"
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/pkg/logger"
)

// ItemHandler maneja las peticiones HTTP para items de inventario.
// Contrato: toda respuesta lleva el booleano success; los errores llevan un
// mensaje legible en error. La API nunca reintenta: cada fallo se convierte
// en una respuesta 4xx/5xx y los 5xx se registran.
type ItemHandler struct {
	uc  *usecase.ItemUseCase
	log *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, log *logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, log: log}
}

// List devuelve todos los items, más reciente primero.
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List()
	if err != nil {
		return h.fail(c, "GET /items", err)
	}
	return c.JSON(dto.ListResponse{Success: true, Items: items})
}

// Create persiste un nuevo item y responde 201 con el registro creado.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return h.fail(c, "POST /items", err)
	}
	return c.Status(fiber.StatusCreated).
		JSON(dto.ItemEnvelope{Success: true, Item: *out})
}

// Update reemplaza name, qty y price del item indicado por :id.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return h.fail(c, "PUT /items/:id", err)
	}
	return c.JSON(dto.ItemEnvelope{Success: true, Item: *out})
}

// Delete elimina el item indicado por :id.
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return h.fail(c, "DELETE /items/:id", err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "item eliminado"})
}

// fail mapea el error de dominio al status HTTP y registra los fallos de
// servidor. El cuerpo lleva el mensaje legible, nunca un código de máquina.
func (h *ItemHandler) fail(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error().Err(err).Str("op", op).Msg("fallo de servidor")
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Error: err.Error()})
	}
}
