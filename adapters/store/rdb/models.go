package rdb

import "time"

// RunRecord is the persistence model for one deployment run.
// Table name: runs
type RunRecord struct {
	ID         string     `gorm:"primaryKey;type:text;not null"`
	HubName    string     `gorm:"type:text;not null"`
	Cluster    string     `gorm:"type:text"`
	Operation  string     `gorm:"type:text;not null"`
	Status     string     `gorm:"type:text;not null"`
	Error      string     `gorm:"type:text"`
	StartedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time
}

func (RunRecord) TableName() string { return "runs" }

// StageRecord persistence model. Stages reference their run.
type StageRecord struct {
	ID         string     `gorm:"primaryKey;type:text;not null"`
	RunID      string     `gorm:"type:text;not null;index"`
	Stage      string     `gorm:"type:text;not null"`
	Status     string     `gorm:"type:text;not null"`
	Message    string     `gorm:"type:text"`
	StartedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time
}

func (StageRecord) TableName() string { return "stages" }
