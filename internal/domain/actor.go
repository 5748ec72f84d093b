package domain

// Actor es el contexto de identidad de la petición en curso: el motor nunca
// autentica, solo autoriza operaciones según el rol que venga aquí.
type Actor struct {
	ID       string
	Username string
	Role     string
	// Metadatos de la petición, solo para auditoría.
	IP        string
	UserAgent string
}
