package movement

import (
	"sort"

	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/domain"
)

// Ayudas compartidas por checkout y traslado: validación de forma de las
// líneas y orden determinista de bloqueo de filas.

// validateLines rechaza listas vacías, códigos faltantes y cantidades no
// positivas antes de tocar cualquier fila.
func validateLines(lines []dto.LineRequest) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.ItemCode == "" {
			return domain.ErrInvalidInput
		}
		if l.Quantity <= 0 {
			return domain.NewItemError(domain.ErrInvalidInput, l.ItemCode, "")
		}
	}
	return nil
}

// uniqueCodesSorted devuelve los códigos de las líneas, sin duplicados y en
// orden ascendente. Todas las operaciones del motor bloquean filas en este
// orden para evitar deadlocks entre transacciones concurrentes que toquen
// códigos solapados.
func uniqueCodesSorted(lines []dto.LineRequest) []string {
	seen := make(map[string]bool, len(lines))
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ItemCode] {
			seen[l.ItemCode] = true
			codes = append(codes, l.ItemCode)
		}
	}
	sort.Strings(codes)
	return codes
}

// sortedKeys devuelve las llaves de un map en orden ascendente.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// lockOrder devuelve las dos bodegas en orden ascendente de nombre: el orden
// en que toda operación del motor bloquea las filas de un mismo código.
func lockOrder(a, b string) []string {
	if a < b {
		return []string{a, b}
	}
	return []string{b, a}
}
