package repository

import "github.com/jhoicas/inventario-lite/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
// El almacén asigna ID y CreatedAt en Create; List devuelve los registros
// ordenados por CreatedAt descendente. Update y Delete devuelven
// domain.ErrNotFound si el ID no existe.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	List() ([]*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) error
}
