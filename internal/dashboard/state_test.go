package dashboard_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
	"github.com/jhoicas/inventario-lite/internal/application/usecase"
	"github.com/jhoicas/inventario-lite/internal/dashboard"
	"github.com/jhoicas/inventario-lite/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

// stubAPI doble del puerto API con contadores de llamadas, para verificar
// que las validaciones locales y la confirmación de borrado no emiten
// peticiones.
type stubAPI struct {
	items    []dto.ItemResponse
	fetchErr error
	mutErr   error

	fetchCalls  int
	createCalls int
	updateCalls int
	deleteCalls int
}

func (s *stubAPI) FetchItems() ([]dto.ItemResponse, error) {
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.items, nil
}

func (s *stubAPI) CreateItem(in dto.ItemRequest) (dto.ItemResponse, error) {
	s.createCalls++
	if s.mutErr != nil {
		return dto.ItemResponse{}, s.mutErr
	}
	return dto.ItemResponse{
		ID:        fmt.Sprintf("srv-%d", s.createCalls),
		Name:      in.Name,
		Qty:       in.Qty,
		Price:     in.Price,
		CreatedAt: time.Now(),
	}, nil
}

func (s *stubAPI) UpdateItem(id string, in dto.ItemRequest) (dto.ItemResponse, error) {
	s.updateCalls++
	if s.mutErr != nil {
		return dto.ItemResponse{}, s.mutErr
	}
	return dto.ItemResponse{ID: id, Name: in.Name, Qty: in.Qty, Price: in.Price}, nil
}

func (s *stubAPI) DeleteItem(id string) error {
	s.deleteCalls++
	return s.mutErr
}

func mkItem(id, name string, qty, price float64) dto.ItemResponse {
	return dto.ItemResponse{
		ID:    id,
		Name:  name,
		Qty:   decimal.NewFromFloat(qty),
		Price: decimal.NewFromFloat(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas derivadas
// ──────────────────────────────────────────────────────────────────────────────

func TestGrandTotal_SumaQtyPorPrice(t *testing.T) {
	d := dashboard.New(&stubAPI{})
	d.Items = []dto.ItemResponse{
		mkItem("1", "Bolt", 2, 0.5),
		mkItem("2", "Nut", 10, 0.25),
	}

	// 2×0.5 + 10×0.25 = 3.5
	assert.Equal(t, "3.5", d.GrandTotal().String())
}

func TestGrandTotal_QuitarItemReduceElTotal(t *testing.T) {
	api := &stubAPI{}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{
		mkItem("1", "Bolt", 2, 0.5),
		mkItem("2", "Nut", 10, 0.25),
	}

	d.RequestDelete("2")
	d.ConfirmDelete()

	// El total baja exactamente en qty×price del eliminado (10×0.25).
	assert.Equal(t, "1", d.GrandTotal().String())
}

func TestVisibleItems_BusquedaSinMayusculas(t *testing.T) {
	d := dashboard.New(&stubAPI{})
	d.Items = []dto.ItemResponse{
		mkItem("1", "Bolt", 2, 1),
		mkItem("2", "Nut", 10, 1),
	}

	d.Search = "bo"
	visible := d.VisibleItems()
	require.Len(t, visible, 1)
	assert.Equal(t, "Bolt", visible[0].Name)

	d.Search = ""
	assert.Len(t, d.VisibleItems(), 2, "término vacío coincide con todo")
}

func TestVisibleItems_StockBajo(t *testing.T) {
	d := dashboard.New(&stubAPI{})
	d.Items = []dto.ItemResponse{
		mkItem("1", "Bolt", 2, 1),
		mkItem("2", "Nut", 10, 1),
	}

	d.LowStock = true
	visible := d.VisibleItems()
	require.Len(t, visible, 1, "solo qty < 5 con el toggle activo")
	assert.Equal(t, "Bolt", visible[0].Name)

	// qty exactamente 5 no es stock bajo (el umbral es estricto).
	d.Items = append(d.Items, mkItem("3", "Screw", 5, 1))
	assert.Len(t, d.VisibleItems(), 1)
}

func TestVisibleItems_BusquedaYStockBajo_AND(t *testing.T) {
	d := dashboard.New(&stubAPI{})
	d.Items = []dto.ItemResponse{
		mkItem("1", "Bolt", 2, 1),
		mkItem("2", "Nut", 10, 1),
	}

	d.Search = "nut"
	d.LowStock = true
	assert.Empty(t, d.VisibleItems(),
		"ambos predicados se combinan con AND: Nut no tiene stock bajo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de carga
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_ReemplazaElEspejo(t *testing.T) {
	api := &stubAPI{items: []dto.ItemResponse{mkItem("1", "Bolt", 2, 1)}}
	d := dashboard.New(api)

	d.Load()

	assert.Empty(t, d.LoadError)
	assert.False(t, d.Loading, "el flag de carga se apaga al terminar")
	require.Len(t, d.Items, 1)
	assert.Equal(t, "Bolt", d.Items[0].Name)
}

func TestLoad_Fallo_DejaElEspejoComoEstaba(t *testing.T) {
	api := &stubAPI{fetchErr: errors.New("almacén no disponible")}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("1", "Bolt", 2, 1)}

	d.Load()

	assert.Contains(t, d.LoadError, "almacén no disponible")
	assert.Len(t, d.Items, 1, "el espejo rancio se conserva ante un fallo de carga")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de alta
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitCreate_ValidacionLocal_NoEmitePeticion(t *testing.T) {
	cases := []struct{ name, qty, price string }{
		{"", "1", "1"},
		{"   ", "1", "1"},
		{"Bolt", "muchos", "1"},
		{"Bolt", "-1", "1"},
		{"Bolt", "1", "-0.01"},
	}
	for _, tc := range cases {
		api := &stubAPI{}
		d := dashboard.New(api)
		d.NameInput, d.QtyInput, d.PriceInput = tc.name, tc.qty, tc.price

		d.SubmitCreate()

		assert.NotEmpty(t, d.FormError, "entrada %+v debe fallar la validación local", tc)
		assert.Zero(t, api.createCalls, "una validación local fallida no emite petición")
	}
}

func TestSubmitCreate_Exito_AnteponeYLimpiaElFormulario(t *testing.T) {
	api := &stubAPI{}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("viejo", "Nut", 10, 1)}
	d.NameInput, d.QtyInput, d.PriceInput = "Bolt", "2", "0.5"

	d.SubmitCreate()

	require.Empty(t, d.FormError)
	require.Len(t, d.Items, 2)
	assert.Equal(t, "Bolt", d.Items[0].Name, "el registro devuelto se antepone al espejo")
	assert.Equal(t, "Nut", d.Items[1].Name)
	assert.Empty(t, d.NameInput)
	assert.Empty(t, d.QtyInput)
	assert.Empty(t, d.PriceInput)
}

func TestSubmitCreate_FalloAPI_EspejoIntacto(t *testing.T) {
	api := &stubAPI{mutErr: errors.New("name es requerido")}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("1", "Nut", 10, 1)}
	d.NameInput, d.QtyInput, d.PriceInput = "Bolt", "2", "0.5"

	d.SubmitCreate()

	assert.Contains(t, d.FormError, "name es requerido")
	assert.Len(t, d.Items, 1, "un alta fallida no toca el espejo")
	assert.Equal(t, "Bolt", d.NameInput, "el formulario no se limpia si el alta falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de edición
// ──────────────────────────────────────────────────────────────────────────────

func TestBeginEdit_SiembraCamposYLimpiaError(t *testing.T) {
	d := dashboard.New(&stubAPI{})
	d.Items = []dto.ItemResponse{mkItem("1", "Bolt", 2, 0.5)}
	d.EditError = "error previo"

	require.True(t, d.BeginEdit("1"))

	assert.Equal(t, "1", d.EditingID)
	assert.Equal(t, "Bolt", d.EditName)
	assert.Equal(t, "2", d.EditQty)
	assert.Equal(t, "0.5", d.EditPrice)
	assert.Empty(t, d.EditError, "entrar en edición limpia el error previo")

	assert.False(t, d.BeginEdit("no-existe"))
}

func TestCancelEdit_DescartaSinPeticion(t *testing.T) {
	api := &stubAPI{}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("1", "Bolt", 2, 0.5)}

	d.BeginEdit("1")
	d.EditName = "otro"
	d.CancelEdit()

	assert.Empty(t, d.EditingID)
	assert.Zero(t, api.updateCalls)
}

func TestSubmitEdit_ReemplazaEnSuPosicion(t *testing.T) {
	api := &stubAPI{}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{
		mkItem("1", "Bolt", 2, 0.5),
		mkItem("2", "Nut", 10, 0.25),
		mkItem("3", "Screw", 7, 0.1),
	}

	require.True(t, d.BeginEdit("2"))
	d.EditName, d.EditQty, d.EditPrice = "Nut M8", "4", "0.3"
	d.SubmitEdit()

	require.Empty(t, d.EditError)
	assert.Empty(t, d.EditingID, "con éxito se sale del modo edición")
	require.Len(t, d.Items, 3)
	assert.Equal(t, "Bolt", d.Items[0].Name)
	assert.Equal(t, "Nut M8", d.Items[1].Name, "reemplazo en su posición, sin reordenar")
	assert.Equal(t, "Screw", d.Items[2].Name)
}

func TestSubmitEdit_ValidacionLocal_NoEmitePeticion(t *testing.T) {
	api := &stubAPI{}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("1", "Bolt", 2, 0.5)}

	d.BeginEdit("1")
	d.EditQty = "-3"
	d.SubmitEdit()

	assert.NotEmpty(t, d.EditError)
	assert.Zero(t, api.updateCalls)
	assert.Equal(t, "1", d.EditingID, "se permanece en modo edición para corregir")
}

func TestSubmitEdit_FalloAPI_EspejoIntacto(t *testing.T) {
	api := &stubAPI{mutErr: errors.New("item no encontrado")}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("1", "Bolt", 2, 0.5)}

	d.BeginEdit("1")
	d.EditName = "Otro"
	d.SubmitEdit()

	assert.Contains(t, d.EditError, "item no encontrado")
	assert.Equal(t, "Bolt", d.Items[0].Name, "una edición fallida no toca el espejo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RequiereConfirmacionExplicita(t *testing.T) {
	api := &stubAPI{}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("1", "Bolt", 2, 0.5)}

	d.RequestDelete("1")
	assert.Zero(t, api.deleteCalls, "marcar el borrado no emite petición")
	assert.Len(t, d.Items, 1)

	d.CancelDelete()
	d.ConfirmDelete()
	assert.Zero(t, api.deleteCalls, "tras cancelar no queda borrado pendiente")

	d.RequestDelete("1")
	d.ConfirmDelete()
	assert.Equal(t, 1, api.deleteCalls)
	assert.Empty(t, d.Items, "con éxito el registro sale del espejo")
}

func TestConfirmDelete_Fallo_EspejoIntacto(t *testing.T) {
	api := &stubAPI{mutErr: errors.New("almacén no disponible")}
	d := dashboard.New(api)
	d.Items = []dto.ItemResponse{mkItem("1", "Bolt", 2, 0.5)}

	d.RequestDelete("1")
	d.ConfirmDelete()

	assert.Contains(t, d.DeleteError, "almacén no disponible")
	assert.Len(t, d.Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Extremo a extremo: dashboard → caso de uso → almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

// usecaseAPI implementa el puerto API directamente sobre el caso de uso,
// para ejercitar el ciclo completo sin red.
type usecaseAPI struct {
	uc *usecase.ItemUseCase
}

func (a usecaseAPI) FetchItems() ([]dto.ItemResponse, error) {
	return a.uc.List()
}

func (a usecaseAPI) CreateItem(in dto.ItemRequest) (dto.ItemResponse, error) {
	out, err := a.uc.Create(in)
	if err != nil {
		return dto.ItemResponse{}, err
	}
	return *out, nil
}

func (a usecaseAPI) UpdateItem(id string, in dto.ItemRequest) (dto.ItemResponse, error) {
	out, err := a.uc.Update(id, in)
	if err != nil {
		return dto.ItemResponse{}, err
	}
	return *out, nil
}

func (a usecaseAPI) DeleteItem(id string) error {
	return a.uc.Delete(id)
}

func TestE2E_WidgetCompleto(t *testing.T) {
	uc := usecase.NewItemUseCase(memory.NewItemRepository())
	d := dashboard.New(usecaseAPI{uc: uc})

	// Crear {name:"Widget", qty:3, price:9.5}
	d.NameInput, d.QtyInput, d.PriceInput = "Widget", "3", "9.5"
	d.SubmitCreate()
	require.Empty(t, d.FormError)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "Widget", d.Items[0].Name, "el creado queda en la posición 0")

	// Actualizar a qty 7: el total refleja 7×9.5 = 66.5
	id := d.Items[0].ID
	require.True(t, d.BeginEdit(id))
	d.EditQty = "7"
	d.SubmitEdit()
	require.Empty(t, d.EditError)
	assert.Equal(t, "7", d.Items[0].Qty.String())
	assert.Equal(t, "66.5", d.GrandTotal().String())

	// Borrar: la lista ya no lo contiene y el total lo excluye.
	d.RequestDelete(id)
	d.ConfirmDelete()
	require.Empty(t, d.DeleteError)
	assert.Empty(t, d.Items)
	assert.Equal(t, "0", d.GrandTotal().String())

	// Recargar desde el almacén confirma que el borrado persistió.
	d.Load()
	assert.Empty(t, d.Items)
}
