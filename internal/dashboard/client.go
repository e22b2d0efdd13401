package dashboard

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/inventario-lite/internal/application/dto"
)

// API puerto del dashboard hacia la Inventory API. Permite sustituir el
// transporte real por un doble en los tests del estado.
type API interface {
	FetchItems() ([]dto.ItemResponse, error)
	CreateItem(in dto.ItemRequest) (dto.ItemResponse, error)
	UpdateItem(id string, in dto.ItemRequest) (dto.ItemResponse, error)
	DeleteItem(id string) error
}

var _ API = (*Client)(nil)

// Client implementación de API sobre resty contra la URL base configurada.
// Sin reintentos automáticos: cada acción del usuario emite exactamente una
// petición y espera su único desenlace.
type Client struct {
	http *resty.Client
}

// NewClient construye el cliente HTTP tipado.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetRetryCount(0),
	}
}

// FetchItems descarga la colección completa, más reciente primero.
func (c *Client) FetchItems() ([]dto.ItemResponse, error) {
	var out dto.ListResponse
	resp, err := c.http.R().
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Get("/items")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return out.Items, nil
}

// CreateItem crea un item nuevo y devuelve el registro persistido.
func (c *Client) CreateItem(in dto.ItemRequest) (dto.ItemResponse, error) {
	var out dto.ItemEnvelope
	resp, err := c.http.R().
		SetBody(in).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Post("/items")
	if err != nil {
		return dto.ItemResponse{}, err
	}
	if resp.IsError() {
		return dto.ItemResponse{}, apiError(resp)
	}
	return out.Item, nil
}

// UpdateItem reemplaza name, qty y price del item indicado.
func (c *Client) UpdateItem(id string, in dto.ItemRequest) (dto.ItemResponse, error) {
	var out dto.ItemEnvelope
	resp, err := c.http.R().
		SetBody(in).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		SetPathParam("id", id).
		Put("/items/{id}")
	if err != nil {
		return dto.ItemResponse{}, err
	}
	if resp.IsError() {
		return dto.ItemResponse{}, apiError(resp)
	}
	return out.Item, nil
}

// DeleteItem elimina el item indicado.
func (c *Client) DeleteItem(id string) error {
	resp, err := c.http.R().
		SetError(&dto.ErrorResponse{}).
		SetPathParam("id", id).
		Delete("/items/{id}")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// apiError extrae el mensaje legible del cuerpo de error; si el cuerpo no
// trae mensaje se informa el status HTTP.
func apiError(resp *resty.Response) error {
	if e, ok := resp.Error().(*dto.ErrorResponse); ok && e.Error != "" {
		return errors.New(e.Error)
	}
	return fmt.Errorf("API error: %s", resp.Status())
}
