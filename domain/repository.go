// Package domain declares repository interfaces implemented by the
// adapters/store backends.
package domain

import (
	"context"

	"github.com/binderhub-ops/binderops/domain/model"
)

// RunRepository persists deployment run history.
type RunRepository interface {
	Create(ctx context.Context, run *model.Run) error
	Update(ctx context.Context, run *model.Run) error
	AppendStage(ctx context.Context, runID string, stage model.StageResult) error
	Get(ctx context.Context, id string) (*model.Run, error)
	List(ctx context.Context) ([]*model.Run, error)
}
