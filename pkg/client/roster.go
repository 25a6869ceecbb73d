package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/model"
)

// RosterClient talks to the roster service for shift and nodal point
// lookups.
type RosterClient struct {
	httpClient *HttpClient
}

func NewRosterClient(baseURL string) *RosterClient {
	return &RosterClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *RosterClient) GetShift(ctx context.Context, id int) (*model.Shift, error) {
	resp, err := c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/shifts/%d", id))
	if err != nil {
		return nil, apperrors.Internal("roster service unreachable", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal(fmt.Sprintf("roster service returned status %d", resp.StatusCode), nil)
	}

	var shift model.Shift
	if err := decodeData(resp, &shift); err != nil {
		return nil, apperrors.Internal("failed to decode shift response", err)
	}

	return &shift, nil
}

func (c *RosterClient) GetNodalPoint(ctx context.Context, id int) (*model.NodalPoint, error) {
	resp, err := c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/nodal-points/%d", id))
	if err != nil {
		return nil, apperrors.Internal("roster service unreachable", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal(fmt.Sprintf("roster service returned status %d", resp.StatusCode), nil)
	}

	var point model.NodalPoint
	if err := decodeData(resp, &point); err != nil {
		return nil, apperrors.Internal("failed to decode nodal point response", err)
	}

	return &point, nil
}

func (c *RosterClient) ListShifts(ctx context.Context) ([]model.Shift, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/shifts")
	if err != nil {
		return nil, apperrors.Internal("roster service unreachable", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal(fmt.Sprintf("roster service returned status %d", resp.StatusCode), nil)
	}

	var shifts []model.Shift
	if err := decodeData(resp, &shifts); err != nil {
		return nil, apperrors.Internal("failed to decode shift list", err)
	}

	return shifts, nil
}

func (c *RosterClient) ListNodalPoints(ctx context.Context) ([]model.NodalPoint, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/nodal-points")
	if err != nil {
		return nil, apperrors.Internal("roster service unreachable", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal(fmt.Sprintf("roster service returned status %d", resp.StatusCode), nil)
	}

	var points []model.NodalPoint
	if err := decodeData(resp, &points); err != nil {
		return nil, apperrors.Internal("failed to decode nodal point list", err)
	}

	return points, nil
}

func decodeData(resp *Response, target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return err
	}

	return json.Unmarshal(wrapper.Data, target)
}
