package assistant

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceItem una fila de la tabla de precios de referencia.
type PriceItem struct {
	Category string
	Service  string
	Min      decimal.Decimal
	Max      decimal.Decimal
}

func rp(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// PricingTable tabla estática de precios de referencia de servicio (Rupiah).
var PricingTable = []PriceItem{
	{"Layar", "Ganti LCD/LED laptop 14 inci", rp(650_000), rp(1_200_000)},
	{"Layar", "Ganti LCD/LED laptop 15,6 inci", rp(750_000), rp(1_500_000)},
	{"Layar", "Perbaikan flexible/kabel LCD", rp(150_000), rp(350_000)},
	{"Baterai", "Ganti baterai laptop (original)", rp(450_000), rp(1_100_000)},
	{"Baterai", "Ganti baterai laptop (compatible)", rp(300_000), rp(600_000)},
	{"Keyboard", "Ganti keyboard laptop", rp(200_000), rp(550_000)},
	{"Touchpad", "Perbaikan/ganti touchpad", rp(200_000), rp(500_000)},
	{"Charger", "Ganti adaptor charger", rp(150_000), rp(450_000)},
	{"Charger", "Perbaikan port DC jack", rp(150_000), rp(300_000)},
	{"Penyimpanan", "Upgrade SSD 512 GB + instal ulang", rp(650_000), rp(1_000_000)},
	{"Penyimpanan", "Recovery data hardisk", rp(300_000), rp(1_500_000)},
	{"RAM", "Upgrade RAM 8 GB DDR4", rp(350_000), rp(550_000)},
	{"Motherboard", "Servis motherboard (mati total)", rp(500_000), rp(2_000_000)},
	{"Pendingin", "Cleaning kipas + ganti thermal paste", rp(100_000), rp(250_000)},
	{"Pendingin", "Ganti kipas prosesor", rp(150_000), rp(350_000)},
	{"Engsel", "Perbaikan/ganti engsel", rp(200_000), rp(600_000)},
	{"Software", "Instal ulang Windows + driver", rp(100_000), rp(200_000)},
	{"Software", "Pembersihan virus/malware", rp(100_000), rp(200_000)},
	{"Jaringan", "Perbaikan/ganti modul WiFi", rp(150_000), rp(400_000)},
	{"Audio", "Ganti speaker laptop", rp(150_000), rp(350_000)},
	{"Pemeriksaan", "Biaya cek/diagnosa (gratis jika servis dilanjutkan)", rp(50_000), rp(50_000)},
}

// FormatRupiah formatea un monto como "Rp 1.250.000".
func FormatRupiah(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

// renderPricingTable tabla markdown para el prompt.
func renderPricingTable(items []PriceItem) string {
	var b strings.Builder
	b.WriteString("TABEL HARGA REFERENSI SERVIS PUSCOM:\n")
	b.WriteString("| Kategori | Layanan | Harga |\n|---|---|---|\n")
	for _, it := range items {
		price := FormatRupiah(it.Min)
		if !it.Max.Equal(it.Min) {
			price = fmt.Sprintf("%s - %s", FormatRupiah(it.Min), FormatRupiah(it.Max))
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", it.Category, it.Service, price)
	}
	return b.String()
}
