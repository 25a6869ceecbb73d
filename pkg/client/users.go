package client

import (
	"context"
	"fmt"
	"net/http"

	apperrors "cabroster/pkg/errors"
	"cabroster/pkg/model"
)

// UsersClient talks to the users service for account lookups.
type UsersClient struct {
	httpClient *HttpClient
}

func NewUsersClient(baseURL string) *UsersClient {
	return &UsersClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *UsersClient) GetUser(ctx context.Context, id string) (*model.User, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/users/lookup/"+id)
	if err != nil {
		return nil, apperrors.Internal("users service unreachable", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Internal(fmt.Sprintf("users service returned status %d", resp.StatusCode), nil)
	}

	var user model.User
	if err := decodeData(resp, &user); err != nil {
		return nil, apperrors.Internal("failed to decode user response", err)
	}

	return &user, nil
}
