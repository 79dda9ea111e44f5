package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/irvanshandika/PUSCOM-sub000/internal/application/ports"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/servicerequest"
)

// SweepPrefixes prefijos revisados por el barrido. Los avatares no entran: su clave es fija por usuario.
var SweepPrefixes = []string{servicerequest.KeyPrefix, ProductImagePrefix}

// SweepResult resumen de una pasada.
type SweepResult struct {
	Scanned int
	Deleted int
	Failed  int
}

// UploadSweeper elimina archivos subidos que ninguna fila referencia
// (p. ej. el proceso cayó entre la subida y el commit).
type UploadSweeper struct {
	storage ports.ObjectStorage
	refs    repository.UploadReferenceRepository
	ttl     time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// NewUploadSweeper construye el barrido. ttl es la antigüedad mínima para borrar un archivo.
func NewUploadSweeper(storage ports.ObjectStorage, refs repository.UploadReferenceRepository, ttl time.Duration, log zerolog.Logger) *UploadSweeper {
	return &UploadSweeper{storage: storage, refs: refs, ttl: ttl, log: log, now: time.Now}
}

// SweepOnce ejecuta una pasada completa.
func (s *UploadSweeper) SweepOnce(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	referenced, err := s.refs.ReferencedURLs(ctx)
	if err != nil {
		return res, err
	}
	cutoff := s.now().Add(-s.ttl)
	for _, prefix := range SweepPrefixes {
		objs, err := s.storage.List(ctx, prefix)
		if err != nil {
			return res, err
		}
		for _, o := range objs {
			res.Scanned++
			if o.ModTime.After(cutoff) {
				continue
			}
			if _, ok := referenced[s.storage.URL(o.Key)]; ok {
				continue
			}
			if err := s.storage.Delete(ctx, o.Key); err != nil {
				res.Failed++
				s.log.Error().Err(err).Str("key", o.Key).Msg("no se pudo eliminar archivo huérfano")
				continue
			}
			res.Deleted++
			s.log.Info().Str("key", o.Key).Time("mod_time", o.ModTime).Msg("archivo huérfano eliminado")
		}
	}
	return res, nil
}

// Run ejecuta SweepOnce cada interval hasta que ctx se cancele.
func (s *UploadSweeper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.log.Info().Msg("barrido de huérfanos desactivado")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.SweepOnce(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("pasada de barrido fallida")
				continue
			}
			s.log.Debug().Int("scanned", res.Scanned).Int("deleted", res.Deleted).Int("failed", res.Failed).Msg("pasada de barrido completada")
		}
	}
}
