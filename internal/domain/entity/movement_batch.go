package entity

import "time"

// BatchLine es una línea de un lote de movimiento. ItemName es un snapshot
// tomado al crear el lote: no se actualiza si el artículo se renombra después.
type BatchLine struct {
	ItemCode string `json:"itemCode"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// CheckoutBatch agrupa las líneas de un checkout (consumo de stock) como un
// registro inmutable del libro de movimientos. Las líneas viven embebidas en
// la fila (JSON), no como filas hijas.
type CheckoutBatch struct {
	ID            string
	Lines         []BatchLine
	Warehouse     string
	Reason        string
	TotalItems    int
	TotalQuantity int
	UserID        string
	Username      string // join de lectura; vacío al crear
	CreatedAt     time.Time
}

// TransferBatch agrupa las líneas de un traslado entre bodegas.
type TransferBatch struct {
	ID            string
	Lines         []BatchLine
	FromWarehouse string
	ToWarehouse   string
	TotalItems    int
	TotalQuantity int
	UserID        string
	Username      string
	CreatedAt     time.Time
}

// LineTotals calcula los agregados de un conjunto de líneas.
func LineTotals(lines []BatchLine) (items, quantity int) {
	for _, l := range lines {
		quantity += l.Quantity
	}
	return len(lines), quantity
}
