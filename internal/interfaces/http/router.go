package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-lite/internal/application/usecase"
	"github.com/jhoicas/inventario-lite/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC *usecase.ItemUseCase
	Log    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	itemHandler := NewItemHandler(deps.ItemUC, deps.Log)

	app.Get("/items", itemHandler.List)
	app.Post("/items", itemHandler.Create)
	app.Put("/items/:id", itemHandler.Update)
	app.Delete("/items/:id", itemHandler.Delete)
}
