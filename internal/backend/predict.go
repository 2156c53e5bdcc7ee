package backend

import (
	"context"
	"fmt"
)

// Predict classifies a transit candidate.
func (c *Client) Predict(ctx context.Context, in PredictionInput) (*PredictionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid prediction input: %w", err)
	}
	var result PredictionResult
	if err := c.postJSON(ctx, "/api/predict", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
