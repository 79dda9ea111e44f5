package servicerequest

import (
	"sort"
	"strings"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/entity"
)

// DamageKeywords diccionario fijo de términos de hardware/software buscados en la descripción del daño.
// El orden importa: decide los empates del ranking.
var DamageKeywords = []string{
	"layar", "baterai", "keyboard", "touchpad", "charger",
	"ram", "hardisk", "ssd", "motherboard", "processor",
	"kipas", "overheat", "mati", "lambat", "virus",
	"windows", "bluescreen", "wifi", "speaker", "engsel",
}

// KeywordCount ocurrencias de un término.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// CountKeywords cuenta, por término, cuántas descripciones lo contienen
// (subcadena sin distinguir mayúsculas, una vez por descripción).
// Devuelve solo los términos con al menos una coincidencia, en el orden del diccionario.
func CountKeywords(descriptions, keywords []string) []KeywordCount {
	counts := make([]int, len(keywords))
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	for _, d := range descriptions {
		d = strings.ToLower(d)
		for i, k := range lowered {
			if k != "" && strings.Contains(d, k) {
				counts[i]++
			}
		}
	}
	out := make([]KeywordCount, 0, len(keywords))
	for i, k := range keywords {
		if counts[i] > 0 {
			out = append(out, KeywordCount{Keyword: k, Count: counts[i]})
		}
	}
	return out
}

// TopN ordena por cantidad descendente conservando el orden original en empates y corta en n.
func TopN(counts []KeywordCount, n int) []KeywordCount {
	sorted := make([]KeywordCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Stats agregado de la colección usado como contexto del asistente del personal.
type Stats struct {
	Total     int
	ByStatus  map[string]int
	TopIssues []KeywordCount
	TopBrands []KeywordCount
	Recent    []*entity.ServiceRequest
}

// Analyze calcula el agregado completo. reqs debe venir ordenado por fecha de creación descendente.
func Analyze(reqs []*entity.ServiceRequest, keywords []string, top int) Stats {
	st := Stats{Total: len(reqs), ByStatus: make(map[string]int, len(Statuses))}
	for _, s := range Statuses {
		st.ByStatus[s] = 0
	}

	descriptions := make([]string, 0, len(reqs))
	var brandOrder []string
	brandCount := map[string]int{}
	for _, r := range reqs {
		st.ByStatus[r.Status]++
		descriptions = append(descriptions, r.Damage)

		b := strings.TrimSpace(r.BrandLabel())
		if b == "" {
			continue
		}
		if _, seen := brandCount[b]; !seen {
			brandOrder = append(brandOrder, b)
		}
		brandCount[b]++
	}

	st.TopIssues = TopN(CountKeywords(descriptions, keywords), top)

	brands := make([]KeywordCount, 0, len(brandOrder))
	for _, b := range brandOrder {
		brands = append(brands, KeywordCount{Keyword: b, Count: brandCount[b]})
	}
	st.TopBrands = TopN(brands, top)

	if len(reqs) > top {
		st.Recent = reqs[:top]
	} else {
		st.Recent = reqs
	}
	return st
}
