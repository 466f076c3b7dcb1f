package ports

import (
	"context"

	"github.com/longregen/pipegen/internal/domain/models"
)

// ModelClient is the capability the pipeline layer needs from the model
// service: reachability check plus bounded text completion.
type ModelClient interface {
	Ping(ctx context.Context) error
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
	BaseURL() string
}

// SessionStore keeps generation sessions with bounded size and TTL eviction.
type SessionStore interface {
	Put(session *models.Session)
	Get(id string) (*models.Session, bool)
	Len() int
}
