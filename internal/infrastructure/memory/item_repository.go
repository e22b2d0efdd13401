// Package memory ofrece un ItemRepository en memoria: tabla protegida por
// mutex con IDs uuid. Sirve como almacén de desarrollo cuando no hay
// MONGO_URI configurado y como doble de pruebas.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-lite/internal/domain"
	"github.com/jhoicas/inventario-lite/internal/domain/entity"
	"github.com/jhoicas/inventario-lite/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

type record struct {
	item entity.Item
	seq  uint64 // desempate cuando dos items comparten CreatedAt
}

// ItemRepo tabla id -> item con mutex de lectura/escritura.
type ItemRepo struct {
	mu    sync.RWMutex
	items map[string]record
	seq   uint64
}

// NewItemRepository construye el almacén en memoria vacío.
func NewItemRepository() *ItemRepo {
	return &ItemRepo{items: make(map[string]record)}
}

// Create asigna ID y CreatedAt y guarda una copia del item.
func (r *ItemRepo) Create(item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uuid.New().String()
	item.CreatedAt = time.Now().UTC()
	r.seq++
	r.items[item.ID] = record{item: *item, seq: r.seq}
	return nil
}

// GetByID devuelve una copia del item o (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	it := rec.item
	return &it, nil
}

// List devuelve copias ordenadas por CreatedAt descendente (más reciente
// primero; a igual timestamp gana el insertado después).
func (r *ItemRepo) List() ([]*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]record, 0, len(r.items))
	for _, rec := range r.items {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].item.CreatedAt.Equal(recs[j].item.CreatedAt) {
			return recs[i].item.CreatedAt.After(recs[j].item.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})
	items := make([]*entity.Item, 0, len(recs))
	for _, rec := range recs {
		it := rec.item
		items = append(items, &it)
	}
	return items, nil
}

// Update reemplaza el item existente conservando CreatedAt y orden.
func (r *ItemRepo) Update(item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.item.Name = item.Name
	rec.item.Qty = item.Qty
	rec.item.Price = item.Price
	r.items[item.ID] = rec
	item.CreatedAt = rec.item.CreatedAt
	return nil
}

// Delete elimina el item; un ID ausente devuelve ErrNotFound.
func (r *ItemRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
