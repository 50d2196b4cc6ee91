// Package pdf genera el reporte PDF del listado de usuarios.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  TÍTULO + fecha de generación + total de usuarios             │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Cédula | Nombre | Centro | Correo | Teléfono | Tipo   │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/gestion-centros/internal/application/ports"
)

var _ ports.UserReportGenerator = (*MarotoUserReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 57, Green: 169, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 240, Blue: 240}
)

// MarotoUserReport implementa ports.UserReportGenerator usando Maroto v2.
type MarotoUserReport struct {
	now func() time.Time
}

// NewMarotoUserReport construye el generador.
func NewMarotoUserReport() *MarotoUserReport {
	return &MarotoUserReport{now: time.Now}
}

// GenerateUserReport genera el PDF y devuelve sus bytes.
func (g *MarotoUserReport) GenerateUserReport(_ context.Context, rows []ports.UserReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Listado de usuarios", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(g.now(), len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de usuarios: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(now time.Time, total int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("LISTADO DE USUARIOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Total: "+strconv.Itoa(total), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Cédula", 1),
		h("Nombre", 3),
		h("Centro de formación", 3),
		h("Correo", 2),
		h("Teléfono", 1),
		h("Tipo", 2),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(rows []ports.UserReportRow) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1}))
	}
	out := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		rw := row.New(7).Add(
			cell(strconv.FormatInt(r.User.Cedula, 10), 1),
			cell(r.User.NombreCompleto(), 3),
			cell(r.Centro, 3),
			cell(r.User.Correo, 2),
			cell(r.User.Telefono, 1),
			cell(r.User.TipoUsuario.String(), 2),
		)
		if i%2 == 1 {
			rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, rw)
	}
	return out
}
