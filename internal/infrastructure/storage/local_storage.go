// Package storage guarda los archivos subidos en disco local y los publica bajo una URL base
// (por defecto /uploads, servida por el propio servidor HTTP).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

var _ ports.ObjectStorage = (*LocalStorage)(nil)

// LocalStorage implementación de ObjectStorage sobre el sistema de archivos.
type LocalStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalStorage crea el directorio base si no existe.
func NewLocalStorage(baseDir, publicBaseURL string) (*LocalStorage, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("storage: ruta base: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", abs, err)
	}
	return &LocalStorage{baseDir: abs, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// BaseDir directorio raíz; el router lo sirve como estático.
func (s *LocalStorage) BaseDir() string { return s.baseDir }

// resolve traduce una clave a ruta absoluta impidiendo salir de baseDir.
func (s *LocalStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "\\") {
		return "", fmt.Errorf("%w: clave de archivo inválida %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(clean)), nil
}

// Put escribe en un temporal y renombra, de modo que nunca se sirve un archivo a medias.
func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, _ string) (string, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(dst), ".tmp-"+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("storage: crear temporal: %w", err)
	}
	_, copyErr := io.Copy(f, ctxReader{ctx: ctx, r: r})
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("storage: escribir %s: %w", key, errors.Join(copyErr, closeErr))
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("storage: renombrar %s: %w", key, err)
	}
	return s.URL(key), nil
}

// Delete borrar una clave inexistente no es error.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: eliminar %s: %w", key, err)
	}
	return nil
}

// List recorre recursivamente el prefijo. Los temporales de Put se omiten.
func (s *LocalStorage) List(ctx context.Context, prefix string) ([]ports.ObjectInfo, error) {
	root, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}
	var out []ports.ObjectInfo
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		out = append(out, ports.ObjectInfo{Key: filepath.ToSlash(rel), Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: listar %s: %w", prefix, err)
	}
	return out, nil
}

// URL ruta pública de la clave.
func (s *LocalStorage) URL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL ignora el query string (p. ej. "?v=" de los avatares).
func (s *LocalStorage) KeyFromURL(u string) (string, bool) {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	prefix := s.publicBaseURL + "/"
	if !strings.HasPrefix(u, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(u, prefix)
	return key, key != ""
}

// ctxReader corta la copia si el contexto se cancela.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
