package ports

import (
	"context"
	"io"
	"time"
)

// ObjectInfo metadatos de un objeto almacenado.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// ObjectStorage almacenamiento de archivos subidos (fotos de servicio, productos, avatares).
// Las claves usan "/" como separador: "service-requests/1700000000000-foto.jpg".
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	URL(key string) string
	// KeyFromURL invierte URL; false si la URL no pertenece a este almacenamiento.
	KeyFromURL(url string) (string, bool)
}
