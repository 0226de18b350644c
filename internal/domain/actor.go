package domain

// Roles reconocidos por el sistema.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// Actor identifica a quien ejecuta una operación. Se construye en la capa HTTP a
// partir del token y se pasa explícitamente a los casos de uso.
type Actor struct {
	UserID string
	Roles  []string
}

// HasRole indica si el actor tiene alguno de los roles dados.
func (a Actor) HasRole(roles ...string) bool {
	for _, have := range a.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsSupervisor es true para Admin y Manager.
func (a Actor) IsSupervisor() bool {
	return a.HasRole(RoleAdmin, RoleManager)
}

// ValidRole indica si el rol es uno de los reconocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}
