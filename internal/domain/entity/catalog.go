package entity

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CatalogKind tipo de catálogo maestro.
type CatalogKind string

const (
	CatalogColor        CatalogKind = "colores"
	CatalogSize         CatalogKind = "tallas"
	CatalogCategory     CatalogKind = "categorias"
	CatalogFamily       CatalogKind = "familias"
	CatalogLine         CatalogKind = "lineas"
	CatalogMaterialType CatalogKind = "tipos-material"
)

// AllCatalogKinds catálogos soportados.
var AllCatalogKinds = []CatalogKind{
	CatalogColor, CatalogSize, CatalogCategory, CatalogFamily, CatalogLine, CatalogMaterialType,
}

// IsValid indica si el catálogo existe.
func (k CatalogKind) IsValid() bool {
	for _, c := range AllCatalogKinds {
		if c == k {
			return true
		}
	}
	return false
}

// CatalogItem valor de un catálogo (color, talla, categoría, familia, línea, tipo de material).
// La descripción es única dentro de su catálogo.
type CatalogItem struct {
	ID          string
	Kind        CatalogKind
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeDescription clave de unicidad de una descripción: sin tildes, en minúsculas
// y con los espacios internos colapsados. "Azul  Marino" y "azul marino" chocan.
func NormalizeDescription(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}
