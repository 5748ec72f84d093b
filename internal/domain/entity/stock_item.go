package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condiciones válidas de un artículo.
const (
	ConditionGood = "good"
	ConditionBad  = "bad"
)

// StockItem representa una unidad de inventario por bodega: la pareja
// (Code, Warehouse) es única y Quantity nunca baja de cero.
type StockItem struct {
	ID            string
	Name          string
	Code          string
	Quantity      int
	Price         decimal.Decimal
	Category      string
	Condition     string // good | bad
	Image         string
	Note          string
	Warehouse     string
	UpdatedBy     string // id del último usuario que tocó la fila; vacío si vino de seed
	UpdatedByName string // join de lectura; vacío al escribir
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
