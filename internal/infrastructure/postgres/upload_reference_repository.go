package postgres

import (
	"context"
	"fmt"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

var _ repository.UploadReferenceRepository = (*UploadReferenceRepo)(nil)

// UploadReferenceRepo reúne las URLs de imágenes guardadas en productos y solicitudes.
type UploadReferenceRepo struct {
	q Querier
}

// NewUploadReferenceRepository construye el adaptador.
func NewUploadReferenceRepository(q Querier) *UploadReferenceRepo {
	return &UploadReferenceRepo{q: q}
}

// ReferencedURLs conjunto de URLs referenciadas por alguna fila.
func (r *UploadReferenceRepo) ReferencedURLs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.q.Query(ctx, `
		SELECT jsonb_array_elements_text(images) FROM products
		UNION
		SELECT jsonb_array_elements_text(images) FROM service_requests`)
	if err != nil {
		return nil, fmt.Errorf("referenced uploads: %w", err)
	}
	defer rows.Close()
	out := map[string]struct{}{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan referenced upload: %w", err)
		}
		out[u] = struct{}{}
	}
	return out, rows.Err()
}
