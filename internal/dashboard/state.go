package dashboard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
)

// lowStockThreshold un item está bajo de stock cuando qty < 5.
var lowStockThreshold = decimal.NewFromInt(5)

// Dashboard estado del cliente: espejo local de la colección del servidor
// más el estado transitorio de UI (formulario, filtros, edición en curso,
// borrado pendiente de confirmación, flags y mensajes de error).
//
// Reglas de reconciliación: cada mutación exitosa ajusta el espejo con la
// respuesta de la API (sin recarga completa); una mutación fallida nunca
// toca el espejo.
type Dashboard struct {
	api API

	// Espejo local de la colección.
	Items []dto.ItemResponse

	// Formulario de alta.
	NameInput  string
	QtyInput   string
	PriceInput string

	// Filtros.
	Search   string
	LowStock bool

	// Edición en curso (a lo sumo un item a la vez).
	EditingID string
	EditName  string
	EditQty   string
	EditPrice string

	// Borrado pendiente de confirmación explícita.
	PendingDeleteID string

	Loading    bool
	Submitting bool

	LoadError   string
	FormError   string
	EditError   string
	DeleteError string
}

// New construye el dashboard sobre el puerto API dado.
func New(api API) *Dashboard {
	return &Dashboard{api: api}
}

// Load descarga la lista completa y reemplaza el espejo. Si falla, el espejo
// queda como estaba (vacío o rancio) y se informa el error de carga.
func (d *Dashboard) Load() {
	d.Loading = true
	defer func() { d.Loading = false }()

	items, err := d.api.FetchItems()
	if err != nil {
		d.LoadError = "error al cargar items: " + err.Error()
		return
	}
	d.LoadError = ""
	d.Items = items
}

// SubmitCreate valida el formulario y, si pasa, envía la petición de alta.
// Con éxito antepone el registro devuelto al espejo y limpia el formulario;
// con fallo informa el error sin tocar el espejo. Una validación local
// fallida no emite petición alguna.
func (d *Dashboard) SubmitCreate() {
	req, err := parseForm(d.NameInput, d.QtyInput, d.PriceInput)
	if err != nil {
		d.FormError = err.Error()
		return
	}

	d.Submitting = true
	defer func() { d.Submitting = false }()

	item, err := d.api.CreateItem(req)
	if err != nil {
		d.FormError = err.Error()
		return
	}
	d.Items = append([]dto.ItemResponse{item}, d.Items...)
	d.NameInput, d.QtyInput, d.PriceInput = "", "", ""
	d.FormError = ""
}

// BeginEdit entra en modo edición para el item indicado, sembrando los
// campos con sus valores actuales y limpiando cualquier error de edición
// previo. Devuelve false si el id no está en el espejo.
func (d *Dashboard) BeginEdit(id string) bool {
	for _, it := range d.Items {
		if it.ID == id {
			d.EditingID = id
			d.EditName = it.Name
			d.EditQty = it.Qty.String()
			d.EditPrice = it.Price.String()
			d.EditError = ""
			return true
		}
	}
	return false
}

// CancelEdit descarta los campos sembrados sin emitir petición.
func (d *Dashboard) CancelEdit() {
	d.EditingID = ""
	d.EditName, d.EditQty, d.EditPrice = "", "", ""
	d.EditError = ""
}

// SubmitEdit revalida con las mismas restricciones del alta y envía la
// actualización. Con éxito reemplaza el registro en su posición (sin
// reordenar) y sale del modo edición; con fallo informa el error y deja el
// espejo y el modo edición como estaban.
func (d *Dashboard) SubmitEdit() {
	if d.EditingID == "" {
		return
	}
	req, err := parseForm(d.EditName, d.EditQty, d.EditPrice)
	if err != nil {
		d.EditError = err.Error()
		return
	}

	d.Submitting = true
	defer func() { d.Submitting = false }()

	item, err := d.api.UpdateItem(d.EditingID, req)
	if err != nil {
		d.EditError = err.Error()
		return
	}
	for i := range d.Items {
		if d.Items[i].ID == item.ID {
			d.Items[i] = item
			break
		}
	}
	d.CancelEdit()
}

// RequestDelete marca el item para borrado; la petición solo se emite tras
// ConfirmDelete (paso de confirmación explícito del usuario).
func (d *Dashboard) RequestDelete(id string) {
	d.PendingDeleteID = id
}

// CancelDelete descarta el borrado pendiente sin emitir petición.
func (d *Dashboard) CancelDelete() {
	d.PendingDeleteID = ""
}

// ConfirmDelete emite el borrado pendiente. Con éxito quita el registro del
// espejo por id; con fallo informa el error y deja el espejo intacto.
func (d *Dashboard) ConfirmDelete() {
	id := d.PendingDeleteID
	d.PendingDeleteID = ""
	if id == "" {
		return
	}

	d.Submitting = true
	defer func() { d.Submitting = false }()

	if err := d.api.DeleteItem(id); err != nil {
		d.DeleteError = err.Error()
		return
	}
	d.DeleteError = ""
	kept := d.Items[:0:0]
	for _, it := range d.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	d.Items = kept
}

// GrandTotal suma qty × price sobre todo el espejo. Proyección pura:
// se recalcula en cada llamada, nunca se cachea.
func (d *Dashboard) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.Qty.Mul(it.Price))
	}
	return total
}

// VisibleItems filtra el espejo: coincidencia de substring sin distinguir
// mayúsculas contra name (término vacío coincide con todo) Y, con el toggle
// activo, qty < 5. Proyección pura sobre el espejo actual.
func (d *Dashboard) VisibleItems() []dto.ItemResponse {
	term := strings.ToLower(strings.TrimSpace(d.Search))
	out := make([]dto.ItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		if term != "" && !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		if d.LowStock && !it.Qty.LessThan(lowStockThreshold) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// parseForm valida la entrada local con las mismas restricciones del
// modelo: name no vacío tras trim, qty y price numéricos y >= 0.
func parseForm(name, qty, price string) (dto.ItemRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dto.ItemRequest{}, fmt.Errorf("name es requerido")
	}
	q, err := decimal.NewFromString(strings.TrimSpace(qty))
	if err != nil {
		return dto.ItemRequest{}, fmt.Errorf("qty debe ser numérico")
	}
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return dto.ItemRequest{}, fmt.Errorf("price debe ser numérico")
	}
	if q.LessThan(decimal.Zero) {
		return dto.ItemRequest{}, fmt.Errorf("qty debe ser >= 0")
	}
	if p.LessThan(decimal.Zero) {
		return dto.ItemRequest{}, fmt.Errorf("price debe ser >= 0")
	}
	return dto.ItemRequest{Name: name, Qty: q, Price: p}, nil
}
