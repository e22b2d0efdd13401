package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para items de inventario.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// List devuelve todos los items ordenados por CreatedAt descendente.
func (uc *ItemUseCase) List() ([]dto.ItemResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, dto.FromEntity(it))
	}
	return items, nil
}

// Create valida y persiste un nuevo item. El almacén asigna ID y CreatedAt.
func (uc *ItemUseCase) Create(in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	item := &entity.Item{
		Name:  strings.TrimSpace(in.Name),
		Qty:   in.Qty,
		Price: in.Price,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	out := dto.FromEntity(item)
	return &out, nil
}

// Update reemplaza name, qty y price del item indicado. Todo o nada: si los
// valores nuevos no validan, el registro almacenado queda intacto.
func (uc *ItemUseCase) Update(id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	item.Name = strings.TrimSpace(in.Name)
	item.Qty = in.Qty
	item.Price = in.Price
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	out := dto.FromEntity(item)
	return &out, nil
}

// Delete elimina el item por ID. Borrar un ID ausente devuelve ErrNotFound,
// también en un segundo intento sobre el mismo ID.
func (uc *ItemUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// validate aplica las restricciones del modelo: name no vacío (tras trim),
// qty >= 0 y price >= 0.
func validate(in dto.ItemRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.Qty.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: qty debe ser >= 0", domain.ErrInvalidInput)
	}
	if in.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price debe ser >= 0", domain.ErrInvalidInput)
	}
	return nil
}
