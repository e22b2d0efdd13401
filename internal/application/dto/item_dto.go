package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-lite/internal/domain/entity"
)

// ItemRequest entrada para crear o reemplazar un item. El reemplazo es de
// campos completos: no hay patch parcial.
type ItemRequest struct {
	Name  string          `json:"name"`
	Qty   decimal.Decimal `json:"qty"`
	Price decimal.Decimal `json:"price"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Qty       decimal.Decimal `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListResponse envoltura de GET /items.
type ListResponse struct {
	Success bool           `json:"success"`
	Items   []ItemResponse `json:"items"`
}

// ItemEnvelope envoltura de POST /items y PUT /items/:id.
type ItemEnvelope struct {
	Success bool         `json:"success"`
	Item    ItemResponse `json:"item"`
}

// MessageResponse envoltura de DELETE /items/:id.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP. Error es un mensaje legible, no un
// código estable: los clientes no deben hacer match sobre el texto.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// FromEntity convierte la entidad al DTO de salida.
func FromEntity(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Qty:       it.Qty,
		Price:     it.Price,
		CreatedAt: it.CreatedAt,
	}
}
