package model

import "time"

// Stage identifies a step of the deployment pipeline. Stages are recorded
// as they complete so a failed run can report how far it got.
type Stage string

const (
	StageResourceGroup Stage = "resource-group"
	StageClusterCreate Stage = "cluster-create"
	StageNodesReady    Stage = "nodes-ready"
	StageHubRBAC       Stage = "hub-rbac"
	StageChartInstall  Stage = "chart-install"
	StageServiceIP     Stage = "service-ip"
	StageChartUpgrade  Stage = "chart-upgrade"
)

// Run status values.
const (
	RunStatusStarted = "started"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// Run represents one recorded invocation of the deployment pipeline.
type Run struct {
	ID         string
	HubName    string
	Cluster    string
	Operation  string // "deploy", "upgrade", "teardown"
	Status     string
	Error      string
	Stages     []StageResult
	StartedAt  time.Time
	FinishedAt *time.Time
}

// StageResult records the outcome of a single pipeline stage.
type StageResult struct {
	Stage      Stage
	Status     string
	Message    string
	StartedAt  time.Time
	FinishedAt *time.Time
}
