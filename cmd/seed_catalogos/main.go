// seed_catalogos genera el script SQL que puebla los catálogos del taller (colores,
// tallas, categorías, familias, líneas y tipos de material) a partir de un CSV
// exportado desde Excel (Latin-1, separado por punto y coma: tipo;descripción).
//
// Uso: go run ./cmd/seed_catalogos [ruta/catalogos.csv]
// Por defecto busca catalogos.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalogos.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// catalogNamespace raíz de los UUID deterministas: regenerar el script produce los mismos ids.
var catalogNamespace = uuid.MustParse("6f1c2b9e-3d4a-5b6c-8d7e-9f0a1b2c3d4e")

type seedItem struct {
	id          string
	kind        entity.CatalogKind
	description string
	normalized  string
}

func main() {
	csvPath := "catalogos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	items, skipped, err := parseCatalogCSV(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_catalogos.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d valores, %d filas omitidas\n", outPath, len(items), skipped)
}

// parseCatalogCSV lee filas tipo;descripción. Omite filas vacías, tipos desconocidos y
// descripciones repetidas dentro del mismo tipo (comparadas sin tildes ni mayúsculas).
func parseCatalogCSV(r io.Reader) ([]seedItem, int, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	seen := make(map[string]struct{})
	var items []seedItem
	skipped := 0
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < 2 {
			skipped++
			continue
		}
		kind := entity.CatalogKind(strings.ToLower(strings.TrimSpace(rec[0])))
		desc := strings.Join(strings.Fields(rec[1]), " ")
		if !kind.IsValid() || desc == "" {
			skipped++
			continue
		}
		normalized := entity.NormalizeDescription(desc)
		key := string(kind) + "|" + normalized
		if _, dup := seen[key]; dup {
			skipped++
			continue
		}
		seen[key] = struct{}{}
		items = append(items, seedItem{
			id:          uuid.NewSHA1(catalogNamespace, []byte(key)).String(),
			kind:        kind,
			description: desc,
			normalized:  normalized,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].kind != items[j].kind {
			return items[i].kind < items[j].kind
		}
		return items[i].normalized < items[j].normalized
	})
	return items, skipped, nil
}

func writeSQL(w io.Writer, items []seedItem) error {
	var b strings.Builder
	b.WriteString("-- Catálogos del taller (colores, tallas, categorías, familias, líneas, tipos de material)\n")
	b.WriteString("-- Generado por cmd/seed_catalogos\n\n")
	if len(items) > 0 {
		b.WriteString("INSERT INTO catalog_items (id, kind, description, description_normalized) VALUES\n")
		for i, it := range items {
			sep := ","
			if i == len(items)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s')%s\n",
				it.id, it.kind, escapeSQL(it.description), escapeSQL(it.normalized), sep)
		}
		b.WriteString("ON CONFLICT (kind, description_normalized) DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
