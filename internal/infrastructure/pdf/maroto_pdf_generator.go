// Package pdf genera el comprobante (bukti servis) de una solicitud de reparación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PUSCOM + título     │  N° de servicio + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PELANGGAN: Nombre / Tel / Email                             │
//	│  PERANGKAT: Tipo / Marca / Modelo                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KERUSAKAN: descripción + fecha + fotos                      │
//	│  ESTADO: status + técnico / motivo de rechazo                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR → {PublicURL}/receipt/{id} + leyenda             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

var _ ports.ReceiptGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 183, Green: 28, Blue: 28}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	publicURL string
}

// NewMarotoPDFGenerator publicURL es la URL del frontend usada en el QR.
func NewMarotoPDFGenerator(publicURL string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{publicURL: strings.TrimRight(publicURL, "/")}
}

// ReceiptURL página pública del comprobante.
func (g *MarotoPDFGenerator) ReceiptURL(id string) string {
	return g.publicURL + "/receipt/" + id
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, sr *entity.ServiceRequest) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Bukti Servis PUSCOM", true).
		WithAuthor("PUSCOM", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sr))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sr))
	m.AddRows(deviceRow(sr))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(damageRows(sr)...)
	m.AddRows(statusRow(sr))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(g.ReceiptURL(sr.ID))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sr *entity.ServiceRequest) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("PUSCOM", props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Pusat Servis & Penjualan Komputer", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("BUKTI PERMINTAAN SERVIS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sr.ID, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 7}),
			text.New("Dibuat: "+sr.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func customerRow(sr *entity.ServiceRequest) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATA PELANGGAN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(sr.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Telepon: %s   |   Email: %s",
				nonEmpty(sr.PhoneNumber, "-"), nonEmpty(sr.Email, "-"),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func deviceRow(sr *entity.ServiceRequest) core.Row {
	detail := fmt.Sprintf("Jenis: %s   |   Merek: %s   |   Model: %s",
		sr.DeviceType, nonEmpty(sr.BrandLabel(), "-"), nonEmpty(sr.Model, "-"))
	if sr.DeviceType == entity.DeviceKomputer {
		detail = fmt.Sprintf("Jenis: %s   |   Tipe: %s", sr.DeviceType, nonEmpty(sr.ComputerTypes, "-"))
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATA PERANGKAT", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(detail, props.Text{Size: 9, Top: 6}),
		),
	)
}

func damageRows(sr *entity.ServiceRequest) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("KERUSAKAN (tanggal: %s)", sr.Date), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, chunk := range splitEvery(strings.TrimSpace(sr.Damage), 110) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 9, Top: 0.5}),
		)))
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Foto terlampir: %d", len(sr.Images)), props.Text{Size: 8, Top: 1.5, Color: colorGray}),
	)))
	return rows
}

func statusRow(sr *entity.ServiceRequest) core.Row {
	status := servicerequest.Label(sr.Status)
	var detail string
	color := colorPrimary
	switch {
	case sr.Status == servicerequest.StatusRejected:
		detail = "Alasan: " + nonEmpty(sr.RejectedReason, "-")
		color = colorDanger
	case sr.TechnicianName != "":
		detail = fmt.Sprintf("Teknisi: %s (%s)", sr.TechnicianName, nonEmpty(sr.TechnicianPhone, "-"))
	default:
		detail = "Teknisi akan menghubungi Anda setelah perangkat diperiksa."
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("STATUS: "+strings.ToUpper(status), props.Text{Style: fontstyle.Bold, Size: 10, Color: color, Top: 2}),
			text.New(detail, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func footerRows(receiptURL string) []core.Row {
	return []core.Row{
		row.New(45).Add(
			col.New(4).Add(code.NewQr(receiptURL, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Pindai kode QR untuk melihat status servis secara online.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New(receiptURL, props.Text{Size: 7, Top: 12, Left: 3, Color: colorPrimary}),
				text.New("Simpan bukti ini dan tunjukkan saat\nmengambil perangkat di PUSCOM.", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 22, Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
