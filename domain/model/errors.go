package model

import "errors"

// Sentinel errors for the deployment pipeline. Call sites wrap these with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is.
var (
	ErrMissingRequiredConfig = errors.New("missing required configuration")
	ErrLoginFailed           = errors.New("azure login failed")
	ErrResourceGroup         = errors.New("resource group operation failed")
	ErrClusterCreate         = errors.New("cluster creation failed")
	ErrClusterNotReady       = errors.New("cluster nodes not ready before deadline")
	ErrServiceIPNotAssigned  = errors.New("service IP not assigned before deadline")
	ErrTemplateFieldMissing  = errors.New("template field missing")
	ErrChartInstall          = errors.New("chart install failed")

	ErrRunNotFound = errors.New("deployment run not found")
)
