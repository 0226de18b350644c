package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Confecciones-api/internal/domain/workflow"
)

func semaforo() *workflow.Machine[string] {
	return workflow.NewBuilder("verde", "amarillo", "rojo", "apagado").
		Allow("verde", "amarillo", "apagado").
		Allow("amarillo", "rojo", "amarillo").
		Allow("rojo", "verde").
		Terminal("apagado").
		Build()
}

func TestMachine_CanTransition(t *testing.T) {
	m := semaforo()

	tests := []struct {
		from, to string
		want     bool
	}{
		{"verde", "amarillo", true},
		{"verde", "rojo", false},
		{"amarillo", "rojo", true},
		{"amarillo", "amarillo", false}, // transición nula aunque esté en la tabla
		{"rojo", "verde", true},
		{"apagado", "verde", false},
		{"desconocido", "verde", false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, m.CanTransition(tt.from, tt.to))
		})
	}
}

func TestMachine_TerminalSinSalidas(t *testing.T) {
	m := workflow.NewBuilder("a", "b").
		Allow("b", "a").
		Terminal("b").
		Build()

	assert.True(t, m.IsTerminal("b"))
	assert.False(t, m.CanTransition("b", "a"), "un estado terminal ignora su fila de la tabla")
	assert.Empty(t, m.Allowed("b"))
}

func TestMachine_AllowedRespetaOrdenDeclarado(t *testing.T) {
	m := semaforo()
	assert.Equal(t, []string{"amarillo", "apagado"}, m.Allowed("verde"))
	assert.Equal(t, []string{"rojo"}, m.Allowed("amarillo"))
}

func TestMachine_Reentrada(t *testing.T) {
	m := workflow.NewBuilder("abierta", "pausada", "cerrada").
		Allow("abierta", "pausada", "cerrada").
		Allow("pausada", "abierta", "cerrada").
		Terminal("cerrada").
		AllowReentry().
		Build()

	assert.True(t, m.CanTransition("pausada", "pausada"))
	assert.True(t, m.CanTransition("abierta", "abierta"))
	assert.False(t, m.CanTransition("cerrada", "cerrada"), "un terminal no admite reentrada")
	assert.False(t, m.CanTransition("desconocido", "desconocido"))
	assert.Equal(t, []string{"abierta", "pausada", "cerrada"}, m.Allowed("abierta"))
}
