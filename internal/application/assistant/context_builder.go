package assistant

import (
	"fmt"
	"strings"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/analytics"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

// serviceDetailSection describe una solicitud concreta. Las fotos van como enlaces de texto.
func serviceDetailSection(sr *entity.ServiceRequest) string {
	var b strings.Builder
	b.WriteString("DATA SERVIS YANG DIANALISIS:\n")
	fmt.Fprintf(&b, "- ID: %s\n", sr.ID)
	fmt.Fprintf(&b, "- Pelanggan: %s (%s, %s)\n", sr.Name, sr.PhoneNumber, sr.Email)
	fmt.Fprintf(&b, "- Perangkat: %s\n", deviceSummary(sr))
	fmt.Fprintf(&b, "- Keluhan/kerusakan: %s\n", strings.TrimSpace(sr.Damage))
	fmt.Fprintf(&b, "- Tanggal: %s\n", sr.Date)
	fmt.Fprintf(&b, "- Status: %s\n", servicerequest.Label(sr.Status))
	if sr.RejectedReason != "" {
		fmt.Fprintf(&b, "- Alasan ditolak: %s\n", sr.RejectedReason)
	}
	if sr.TechnicianName != "" {
		fmt.Fprintf(&b, "- Teknisi: %s (%s)\n", sr.TechnicianName, sr.TechnicianPhone)
	}
	if len(sr.Images) == 0 {
		b.WriteString("- Foto kerusakan: tidak ada\n")
	} else {
		b.WriteString("- Foto kerusakan (tautan):\n")
		for i, u := range sr.Images {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, u)
		}
	}
	return b.String()
}

// collectionSection resume la colección: conteos, problemas y marcas frecuentes, últimas solicitudes.
func collectionSection(s *analytics.ServiceSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STATISTIK SERVIS (data per %s, periode %s):\n", s.GeneratedAt.Format("2006-01-02 15:04"), s.Period)
	fmt.Fprintf(&b, "- Total permintaan servis: %d\n", s.Total)
	// estados sin solicitudes no se listan
	for _, st := range servicerequest.Statuses {
		if n := s.ByStatus[st]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", servicerequest.Label(st), n)
		}
	}

	b.WriteString("\nMASALAH YANG PALING SERING MUNCUL:\n")
	if len(s.TopIssues) == 0 {
		b.WriteString("- (belum ada data)\n")
	}
	for i, kc := range s.TopIssues {
		fmt.Fprintf(&b, "%d. %s: %d servis\n", i+1, kc.Keyword, kc.Count)
	}

	b.WriteString("\nMEREK TERBANYAK:\n")
	if len(s.TopBrands) == 0 {
		b.WriteString("- (belum ada data)\n")
	}
	for i, kc := range s.TopBrands {
		fmt.Fprintf(&b, "%d. %s: %d servis\n", i+1, kc.Keyword, kc.Count)
	}

	fmt.Fprintf(&b, "\n%d PERMINTAAN SERVIS TERBARU:\n```\n", len(s.Recent))
	for i, sr := range s.Recent {
		fmt.Fprintf(&b, "%d. [%s] %s - %s | %s | %s\n",
			i+1, servicerequest.Label(sr.Status), sr.Name, deviceSummary(sr),
			oneLine(sr.Damage), sr.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString("```\n")
	return b.String()
}

func deviceSummary(sr *entity.ServiceRequest) string {
	if sr.DeviceType == entity.DeviceKomputer {
		return strings.TrimSpace("Komputer " + sr.ComputerTypes)
	}
	return strings.Join(strings.Fields(fmt.Sprintf("%s %s %s", sr.DeviceType, sr.BrandLabel(), sr.Model)), " ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
