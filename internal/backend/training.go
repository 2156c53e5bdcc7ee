package backend

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// ErrDatasetRequired is returned by StartTraining without a dataset.
var ErrDatasetRequired = errors.New("dataset_id is required")

// StartTraining launches a training job.
func (c *Client) StartTraining(ctx context.Context, req TrainingRequest) (*TrainingSession, error) {
	if req.DatasetID == 0 {
		return nil, ErrDatasetRequired
	}
	var resp struct {
		Session TrainingSession `json:"session"`
	}
	if err := c.postJSON(ctx, "/api/training/start", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

// ListTraining returns the training sessions of a workspace.
func (c *Client) ListTraining(ctx context.Context, workspaceID int64) ([]TrainingSession, error) {
	var resp struct {
		Sessions []TrainingSession `json:"sessions"`
	}
	if err := c.getJSON(ctx, "/api/training/list?"+workspaceQuery(workspaceID), &resp); err != nil {
		return nil, err
	}
	if resp.Sessions == nil {
		resp.Sessions = []TrainingSession{}
	}
	return resp.Sessions, nil
}

// AnalysisHistory returns the past predictions of a workspace.
func (c *Client) AnalysisHistory(ctx context.Context, workspaceID int64) ([]AnalysisRecord, error) {
	var resp struct {
		History []AnalysisRecord `json:"history"`
	}
	if err := c.getJSON(ctx, "/api/analysis/history?"+workspaceQuery(workspaceID), &resp); err != nil {
		return nil, err
	}
	if resp.History == nil {
		resp.History = []AnalysisRecord{}
	}
	return resp.History, nil
}

func workspaceQuery(workspaceID int64) string {
	return url.Values{"workspace_id": {strconv.FormatInt(workspaceID, 10)}}.Encode()
}
