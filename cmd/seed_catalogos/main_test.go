package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

func TestParseCatalogCSV_Latin1(t *testing.T) {
	utf8 := "colores;Azul marino\nCOLORES;AZUL  MARINO\ntallas;XL\nsabores;Limón\ncolores;\nsolo-una-columna\ntipos-material;Algodón\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	items, skipped, err := parseCatalogCSV(transform.NewReader(strings.NewReader(latin1), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)

	assert.Equal(t, 4, skipped, "duplicado, tipo desconocido, descripción vacía y fila corta")
	require.Len(t, items, 3)
	assert.Equal(t, entity.CatalogColor, items[0].kind)
	assert.Equal(t, "Azul marino", items[0].description)
	assert.Equal(t, entity.CatalogSize, items[1].kind)
	assert.Equal(t, entity.CatalogMaterialType, items[2].kind)
	assert.Equal(t, "Algodón", items[2].description)
	assert.Equal(t, "algodon", items[2].normalized)
}

func TestParseCatalogCSV_IdsDeterministas(t *testing.T) {
	a, _, err := parseCatalogCSV(strings.NewReader("tallas;M\n"))
	require.NoError(t, err)
	b, _, err := parseCatalogCSV(strings.NewReader("tallas; m \n"))
	require.NoError(t, err)
	assert.Equal(t, a[0].id, b[0].id)
}

func TestWriteSQL(t *testing.T) {
	items, _, err := parseCatalogCSV(strings.NewReader("lineas;D'Moda\nlineas;Casual\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, items))
	sql := buf.String()
	assert.Contains(t, sql, "INSERT INTO catalog_items")
	assert.Contains(t, sql, "'D''Moda'")
	assert.Contains(t, sql, "ON CONFLICT (kind, description_normalized) DO NOTHING;")
	assert.Equal(t, 2, strings.Count(sql, "'lineas'"))
}
