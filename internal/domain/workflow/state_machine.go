// Package workflow define la máquina de estados común a pedidos y asignaciones
// de tareas: una tabla explícita de transiciones más el conjunto de estados terminales.
package workflow

// Machine aplica una tabla de transiciones sobre un tipo de estado.
type Machine[S comparable] struct {
	order       []S
	transitions map[S]map[S]struct{}
	terminal    map[S]struct{}
	reentrant   bool
}

// Builder arma una Machine declarando estados, transiciones y terminales.
type Builder[S comparable] struct {
	m *Machine[S]
}

// NewBuilder inicia una máquina con los estados en el orden indicado (el orden
// se usa para listar destinos permitidos de forma estable).
func NewBuilder[S comparable](states ...S) *Builder[S] {
	m := &Machine[S]{
		order:       states,
		transitions: make(map[S]map[S]struct{}, len(states)),
		terminal:    make(map[S]struct{}),
	}
	for _, s := range states {
		m.transitions[s] = make(map[S]struct{})
	}
	return &Builder[S]{m: m}
}

// Allow registra from -> to para cada destino.
func (b *Builder[S]) Allow(from S, to ...S) *Builder[S] {
	row, ok := b.m.transitions[from]
	if !ok {
		row = make(map[S]struct{})
		b.m.transitions[from] = row
	}
	for _, t := range to {
		row[t] = struct{}{}
	}
	return b
}

// Terminal marca estados sumidero: no salen transiciones de ellos.
func (b *Builder[S]) Terminal(states ...S) *Builder[S] {
	for _, s := range states {
		b.m.terminal[s] = struct{}{}
	}
	return b
}

// AllowReentry acepta from == to en estados no terminales (reaplicar el estado actual).
func (b *Builder[S]) AllowReentry() *Builder[S] {
	b.m.reentrant = true
	return b
}

// Build devuelve la máquina construida.
func (b *Builder[S]) Build() *Machine[S] {
	return b.m
}

// IsTerminal indica si s es un estado sumidero.
func (m *Machine[S]) IsTerminal(s S) bool {
	_, ok := m.terminal[s]
	return ok
}

// CanTransition evalúa, en este orden: origen terminal, transición nula y tabla.
// La transición nula solo se acepta si la máquina admite reentrada y from es conocido.
func (m *Machine[S]) CanTransition(from, to S) bool {
	if m.IsTerminal(from) {
		return false
	}
	row, ok := m.transitions[from]
	if from == to {
		return ok && m.reentrant
	}
	if !ok {
		return false
	}
	_, ok = row[to]
	return ok
}

// Allowed lista los destinos válidos desde from.
func (m *Machine[S]) Allowed(from S) []S {
	out := make([]S, 0)
	for _, s := range m.order {
		if m.CanTransition(from, s) {
			out = append(out, s)
		}
	}
	return out
}
