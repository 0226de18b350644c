package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

func TestNormalizeDescription(t *testing.T) {
	cases := map[string]string{
		"Azul Marino":      "azul marino",
		"  azul   marino ": "azul marino",
		"Algodón":          "algodon",
		"ALGODON":          "algodon",
		"Camiseta Niño":    "camiseta nino",
	}
	for in, want := range cases {
		assert.Equal(t, want, entity.NormalizeDescription(in), in)
	}
}

func TestCatalogKind_IsValid(t *testing.T) {
	assert.True(t, entity.CatalogKind("tallas").IsValid())
	assert.True(t, entity.CatalogMaterialType.IsValid())
	assert.False(t, entity.CatalogKind("sabores").IsValid())
}
