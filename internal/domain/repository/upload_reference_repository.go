package repository

import "context"

// UploadReferenceRepository resuelve qué URLs de archivos subidos siguen referenciadas
// por alguna fila (productos, solicitudes, avatares). Lo usa el barrido de huérfanos.
type UploadReferenceRepository interface {
	ReferencedURLs(ctx context.Context) (map[string]struct{}, error)
}
