package entity

import "time"

// Product representa un producto físico del catálogo. Los precios NO viven
// aquí: vienen siempre de los lotes de stock (ver Lot). Revision se
// incrementa en cada transacción que muta stock del producto, para que los
// colaboradores de UI puedan refrescar sin comparar conteos crudos.
type Product struct {
	ID           string
	Name         string
	Brand        string
	Discontinued bool
	Revision     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
