package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// UploadDataset sends a CSV file to a workspace as multipart form data.
func (c *Client) UploadDataset(ctx context.Context, workspaceID int64, filename string, r io.Reader) (*Dataset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("workspace_id", strconv.FormatInt(workspaceID, 10)); err != nil {
		return nil, fmt.Errorf("writing workspace_id field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copying %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	var resp struct {
		Dataset Dataset `json:"dataset"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/dataset/upload", &buf, mw.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp.Dataset, nil
}
