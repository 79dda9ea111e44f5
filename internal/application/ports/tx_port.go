package ports

import (
	"context"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
// Activities es nil cuando el feed de actividad no vive en la misma base (p. ej. DynamoDB).
type TxRepos struct {
	ServiceRequests repository.ServiceRequestRepository
	Activities      repository.ActivityRepository
}

// TxRunner ejecuta fn dentro de una transacción; Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
