// seed genera el script SQL que puebla la tabla centros a partir de un CSV exportado
// del sistema académico (separador ';', columnas codigo;nombre, codificación ISO-8859-1 o UTF-8).
//
// Uso: go run ./cmd/seed [ruta/centros.csv]
// Por defecto busca centros.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_centros.sql
package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type centro struct {
	id     int
	nombre string
}

func main() {
	csvPath := "centros.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	centros, err := parseCentros(decodeLatin1(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_centros.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	writeSQL(w, centros)
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir archivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d centros\n", outPath, len(centros))
}

// decodeLatin1 convierte a UTF-8 cuando el archivo no es UTF-8 válido (exportes en ISO-8859-1).
func decodeLatin1(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func parseCentros(r io.Reader) ([]centro, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	byID := make(map[int]string)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			continue // encabezado u otra fila no numérica
		}
		nombre := strings.TrimSpace(rec[1])
		if nombre == "" {
			continue
		}
		byID[id] = nombre
	}

	out := make([]centro, 0, len(byID))
	for id, nombre := range byID {
		out = append(out, centro{id: id, nombre: nombre})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out, nil
}

func writeSQL(w io.StringWriter, centros []centro) {
	_, _ = w.WriteString("-- Centros de formación\n")
	_, _ = w.WriteString("-- Generado por cmd/seed\n\n")
	if len(centros) == 0 {
		return
	}
	_, _ = w.WriteString("INSERT INTO centros (cen_id, cen_nombre) VALUES\n")
	for i, c := range centros {
		sep := ","
		if i == len(centros)-1 {
			sep = ""
		}
		_, _ = w.WriteString(fmt.Sprintf("  (%d, '%s')%s\n", c.id, escapeSQL(c.nombre), sep))
	}
	_, _ = w.WriteString("ON CONFLICT (cen_id) DO UPDATE SET cen_nombre = EXCLUDED.cen_nombre;\n")
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
