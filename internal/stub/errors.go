package stub

import "errors"

// Sentinel errors map onto the detail strings and status codes the real
// backend emits, so the console's error mapping sees identical answers.
var (
	errUserNotFound    = errors.New("Usuario no encontrado")
	errWrongPassword   = errors.New("Contraseña incorrecta")
	errLineExists      = errors.New("Codigo de linea ya existe")
	errLineNotFound    = errors.New("Linea no encontrada")
	errSegmentExists   = errors.New("Segmento ya existe")
	errProductExists   = errors.New("Codigo de producto ya existe")
	errProductNotFound = errors.New("Producto no encontrado")
)
