// Package pdf genera el afiche imprimible con el código QR del menú:
// una página A4 con el nombre del restaurante, el QR centrado y la URL.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/menuqr/menuqr-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Verificar en tiempo de compilación que el generador implementa el puerto.
var _ ports.PosterGenerator = (*QRPosterGenerator)(nil)

// QRPosterGenerator implementa ports.PosterGenerator usando Maroto v2.
type QRPosterGenerator struct{}

// NewQRPosterGenerator construye el generador.
func NewQRPosterGenerator() *QRPosterGenerator { return &QRPosterGenerator{} }

// GenerateQRPoster genera el afiche y devuelve sus bytes.
func (g *QRPosterGenerator) GenerateQRPoster(restaurantName, menuURL string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).WithRightMargin(20).
		WithTopMargin(25).WithBottomMargin(20).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 12}).
		WithTitle("Menú digital "+restaurantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(24).Add(
		col.New(12).Add(text.New(restaurantName, props.Text{
			Size:  28,
			Style: fontstyle.Bold,
			Align: align.Center,
			Color: colorPrimary,
		})),
	))
	m.AddRows(row.New(12).Add(
		col.New(12).Add(text.New("Escanea el código y mira nuestro menú", props.Text{
			Size:  14,
			Align: align.Center,
			Color: colorGray,
		})),
	))
	m.AddRows(line.NewRow(8))

	m.AddRows(row.New(120).Add(
		col.New(2),
		col.New(8).Add(code.NewQr(menuURL, props.Rect{
			Percent: 100,
			Center:  true,
		})),
		col.New(2),
	))

	m.AddRows(line.NewRow(8))
	m.AddRows(row.New(10).Add(
		col.New(12).Add(text.New(menuURL, props.Text{
			Size:  11,
			Align: align.Center,
			Color: colorGray,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar afiche: %w", err)
	}
	return doc.GetBytes(), nil
}
