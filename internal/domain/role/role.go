package role

// Roles válidos del sistema, en orden de privilegio ascendente.
const (
	Staff      = "staff"
	Admin      = "admin"
	SuperAdmin = "super admin"
)

// Capability identifica una operación protegida. Cada caso de uso consulta
// Allows con su capability en vez de comparar strings de rol por su cuenta.
type Capability string

const (
	CapManageItems    Capability = "items:manage"     // crear/editar/eliminar artículos
	CapManageUsers    Capability = "users:manage"     // administración de usuarios
	CapDeleteMovement Capability = "movements:delete" // revertir checkouts y traslados
	CapViewLogs       Capability = "logs:view"        // consultar auditoría
)

// grants tabla rol -> capabilities. Staff solo opera movimientos y lecturas.
var grants = map[string]map[Capability]bool{
	Staff: {},
	Admin: {
		CapManageItems: true,
		CapViewLogs:    true,
	},
	SuperAdmin: {
		CapManageItems:    true,
		CapManageUsers:    true,
		CapDeleteMovement: true,
		CapViewLogs:       true,
	},
}

// Allows responde si el rol tiene la capability. Roles desconocidos no tienen ninguna.
func Allows(actorRole string, cap Capability) bool {
	caps, ok := grants[actorRole]
	if !ok {
		return false
	}
	return caps[cap]
}

// Valid responde si el string corresponde a un rol conocido.
func Valid(r string) bool {
	_, ok := grants[r]
	return ok
}
