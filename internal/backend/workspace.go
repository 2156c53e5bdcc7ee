package backend

import (
	"context"
	"errors"
	"strings"
)

// ErrNameRequired is returned by CreateWorkspace for a blank name.
var ErrNameRequired = errors.New("workspace name is required")

// ErrKeyRequired is returned by JoinWorkspace for a blank key.
var ErrKeyRequired = errors.New("workspace key is required")

// ListWorkspaces returns the workspaces the user belongs to.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	var resp struct {
		Workspaces []Workspace `json:"workspaces"`
	}
	if err := c.getJSON(ctx, "/api/workspace/list", &resp); err != nil {
		return nil, err
	}
	if resp.Workspaces == nil {
		resp.Workspaces = []Workspace{}
	}
	return resp.Workspaces, nil
}

// CreateWorkspace creates a workspace owned by the user.
func (c *Client) CreateWorkspace(ctx context.Context, name, description string) (*Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	req := map[string]string{"name": name, "description": description}
	var resp struct {
		Workspace Workspace `json:"workspace"`
	}
	if err := c.postJSON(ctx, "/api/workspace/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Workspace, nil
}

// JoinWorkspace adds the user to the workspace identified by key.
func (c *Client) JoinWorkspace(ctx context.Context, key string) (*Workspace, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}
	var resp struct {
		Workspace Workspace `json:"workspace"`
	}
	if err := c.postJSON(ctx, "/api/workspace/join", map[string]string{"workspace_key": key}, &resp); err != nil {
		return nil, err
	}
	return &resp.Workspace, nil
}
