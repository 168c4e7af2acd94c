package deploy

import (
	"context"
	"time"

	"github.com/binderhub-ops/binderops/domain"
	"github.com/binderhub-ops/binderops/domain/model"
	"github.com/binderhub-ops/binderops/internal/logging"
)

// recorder tracks one run in the history store. All methods are no-ops
// when no repository is configured; history must never fail a pipeline,
// so store errors are logged and swallowed.
type recorder struct {
	repo domain.RunRepository
	run  *model.Run
}

func startRun(ctx context.Context, repo domain.RunRepository, s *model.DeploymentSettings, operation string) *recorder {
	rec := &recorder{repo: repo}
	if repo == nil {
		return rec
	}
	rec.run = &model.Run{
		HubName:   s.HubName,
		Cluster:   s.ClusterName,
		Operation: operation,
		Status:    model.RunStatusStarted,
		StartedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, rec.run); err != nil {
		logging.FromContext(ctx).Warn(ctx, "run history create failed", "error", err)
		rec.run = nil
	}
	return rec
}

// stage runs fn and records its outcome before returning fn's error.
func (r *recorder) stage(ctx context.Context, stage model.Stage, fn func() error) error {
	started := time.Now().UTC()
	err := fn()
	if r.run != nil {
		finished := time.Now().UTC()
		result := model.StageResult{
			Stage:      stage,
			Status:     model.RunStatusSuccess,
			StartedAt:  started,
			FinishedAt: &finished,
		}
		if err != nil {
			result.Status = model.RunStatusFailed
			result.Message = err.Error()
		}
		if aerr := r.repo.AppendStage(ctx, r.run.ID, result); aerr != nil {
			logging.FromContext(ctx).Warn(ctx, "run history stage append failed", "error", aerr)
		}
	}
	return err
}

func (r *recorder) finish(ctx context.Context, err error) {
	if r.run == nil {
		return
	}
	r.run.Status = model.RunStatusSuccess
	if err != nil {
		r.run.Status = model.RunStatusFailed
		r.run.Error = err.Error()
	}
	finished := time.Now().UTC()
	r.run.FinishedAt = &finished
	if uerr := r.repo.Update(ctx, r.run); uerr != nil {
		logging.FromContext(ctx).Warn(ctx, "run history update failed", "error", uerr)
	}
}
