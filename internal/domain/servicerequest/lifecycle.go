// Package servicerequest reúne las reglas puras del ticket de reparación:
// ciclo de estados, límites del formulario de ingreso y análisis de daños.
package servicerequest

import (
	"fmt"
	"strings"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

// Estados de una solicitud.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
)

// Statuses en el orden de las pestañas del panel.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusRejected}

var transitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusRejected},
	StatusInProgress: {StatusCompleted, StatusRejected},
}

var labels = map[string]string{
	StatusPending:    "Menunggu",
	StatusInProgress: "Diproses",
	StatusCompleted:  "Selesai",
	StatusRejected:   "Ditolak",
}

// IsValid indica si s es un estado conocido.
func IsValid(s string) bool {
	_, ok := labels[s]
	return ok
}

// IsTerminal completed y rejected no admiten más cambios.
func IsTerminal(s string) bool {
	return s == StatusCompleted || s == StatusRejected
}

// Label texto visible del estado.
func Label(s string) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return s
}

// CanTransition devuelve true si from -> to es un paso permitido.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// ValidateTransition comprueba el paso y el motivo obligatorio al rechazar.
func ValidateTransition(from, to, rejectedReason string) error {
	if !IsValid(to) {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	if to == StatusRejected && strings.TrimSpace(rejectedReason) == "" {
		return fmt.Errorf("%w: el motivo de rechazo es obligatorio", domain.ErrInvalidInput)
	}
	return nil
}

// Option una entrada del selector de estado del panel.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// StatusOptions modelo del selector para una solicitud en estado current.
// Solo quedan habilitados los destinos alcanzables; en un estado terminal todo queda deshabilitado.
func StatusOptions(current string) []Option {
	out := make([]Option, 0, len(Statuses))
	for _, s := range Statuses {
		out = append(out, Option{
			Value:    s,
			Label:    labels[s],
			Disabled: !CanTransition(current, s),
		})
	}
	return out
}
