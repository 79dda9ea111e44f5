package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/dto"
	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

// storedObject resultado de una subida, con la clave para poder compensar.
type storedObject struct {
	Key string
	URL string
}

// sniffImage abre el archivo, detecta el tipo por contenido y valida tamaño y tipo.
// Devuelve un reader que reproduce los bytes ya leídos.
func sniffImage(f dto.FileInput, maxBytes int64) (io.Reader, io.Closer, string, error) {
	if f.Size > maxBytes {
		return nil, nil, "", domain.ErrFileTooLarge
	}
	rc, err := f.Open()
	if err != nil {
		return nil, nil, "", fmt.Errorf("abrir archivo %s: %w", f.Filename, err)
	}
	head := make([]byte, 512)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		_ = rc.Close()
		return nil, nil, "", fmt.Errorf("leer archivo %s: %w", f.Filename, err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if err := servicerequest.CheckImage(f.Size, contentType); err != nil {
		_ = rc.Close()
		return nil, nil, "", err
	}
	// LimitReader corta el resto por si Size no refleja el tamaño real.
	r := io.MultiReader(bytes.NewReader(head), io.LimitReader(rc, maxBytes-int64(n)))
	return r, rc, contentType, nil
}

// putImage valida y sube una imagen bajo key.
func putImage(ctx context.Context, storage ports.ObjectStorage, key string, f dto.FileInput, maxBytes int64) (storedObject, error) {
	r, closer, contentType, err := sniffImage(f, maxBytes)
	if err != nil {
		return storedObject{}, err
	}
	defer closer.Close()

	url, err := storage.Put(ctx, key, r, contentType)
	if err != nil {
		return storedObject{}, fmt.Errorf("subir %s: %w", key, err)
	}
	return storedObject{Key: key, URL: url}, nil
}
