package rdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/binderhub-ops/binderops/domain"
	"github.com/binderhub-ops/binderops/domain/model"
)

type RunRepository struct{ db *gorm.DB }

func NewRunRepository(db *gorm.DB) *RunRepository { return &RunRepository{db: db} }

func runToRecord(r *model.Run) *RunRecord {
	return &RunRecord{
		ID: r.ID, HubName: r.HubName, Cluster: r.Cluster, Operation: r.Operation,
		Status: r.Status, Error: r.Error, StartedAt: r.StartedAt, FinishedAt: r.FinishedAt,
	}
}

func runToModel(r *RunRecord, stages []StageRecord) *model.Run {
	run := &model.Run{
		ID: r.ID, HubName: r.HubName, Cluster: r.Cluster, Operation: r.Operation,
		Status: r.Status, Error: r.Error, StartedAt: r.StartedAt, FinishedAt: r.FinishedAt,
	}
	for i := range stages {
		s := &stages[i]
		run.Stages = append(run.Stages, model.StageResult{
			Stage: model.Stage(s.Stage), Status: s.Status, Message: s.Message,
			StartedAt: s.StartedAt, FinishedAt: s.FinishedAt,
		})
	}
	return run
}

func (r *RunRepository) Create(ctx context.Context, run *model.Run) error {
	rec := runToRecord(run)
	if rec.ID == "" {
		rec.ID = "run-" + uuid.NewString()
		run.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RunRepository) Update(ctx context.Context, run *model.Run) error {
	rec := runToRecord(run)
	return r.db.WithContext(ctx).Model(&RunRecord{}).Where("id = ?", rec.ID).
		Select("Status", "Error", "FinishedAt").Updates(rec).Error
}

func (r *RunRepository) AppendStage(ctx context.Context, runID string, stage model.StageResult) error {
	rec := &StageRecord{
		ID:         "stg-" + uuid.NewString(),
		RunID:      runID,
		Stage:      string(stage.Stage),
		Status:     stage.Status,
		Message:    stage.Message,
		StartedAt:  stage.StartedAt,
		FinishedAt: stage.FinishedAt,
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RunRepository) Get(ctx context.Context, id string) (*model.Run, error) {
	var rec RunRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRunNotFound
		}
		return nil, err
	}
	var stages []StageRecord
	if err := r.db.WithContext(ctx).Order("started_at ASC").Find(&stages, "run_id = ?", id).Error; err != nil {
		return nil, err
	}
	return runToModel(&rec, stages), nil
}

func (r *RunRepository) List(ctx context.Context) ([]*model.Run, error) {
	var recs []RunRecord
	if err := r.db.WithContext(ctx).Order("started_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Run, 0, len(recs))
	for i := range recs {
		var stages []StageRecord
		if err := r.db.WithContext(ctx).Order("started_at ASC").Find(&stages, "run_id = ?", recs[i].ID).Error; err != nil {
			return nil, err
		}
		out = append(out, runToModel(&recs[i], stages))
	}
	return out, nil
}

var _ domain.RunRepository = (*RunRepository)(nil)
