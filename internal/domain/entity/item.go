package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un registro de inventario. Qty y Price se manejan como
// decimal para no perder precisión (la UI permite cantidades fraccionarias).
type Item struct {
	ID        string
	Name      string
	Qty       decimal.Decimal
	Price     decimal.Decimal
	CreatedAt time.Time // asignado por el almacén, solo para orden descendente
}
