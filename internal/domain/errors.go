package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes de validación envuelven ErrInvalidInput con fmt.Errorf("%w: ...")
// para que el handler pueda mapear con errors.Is sin perder el texto.
var (
	ErrNotFound         = errors.New("item no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrStoreUnavailable = errors.New("almacén no disponible")
)
