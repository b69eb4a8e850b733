package downstream

import (
	"context"
	"strings"

	"github.com/ebanking/bff-gateway/internal/domain"
	graphql "github.com/graph-gophers/graphql-go"
)

const collaboratorUser = "user"

// ProfileClient is the typed client for the user service's GraphQL API.
// Each method sends one fixed document and unwraps the single field it asks
// for; nothing is reshaped.
type ProfileClient struct {
	Endpoint string
	http     *Client
}

func NewProfileClient(baseURL string, c *Client) *ProfileClient {
	return &ProfileClient{Endpoint: strings.TrimRight(baseURL, "/") + "/graphql", http: c}
}

func (c *ProfileClient) call(ctx context.Context, credential string, doc Document, vars map[string]any, out any) error {
	return c.http.GraphQL(ctx, c.Endpoint, collaboratorUser, credential, doc, vars, out)
}

func (c *ProfileClient) Me(ctx context.Context, credential string) (*domain.UserProfile, error) {
	var data struct {
		Me *domain.UserProfile `json:"me"`
	}
	if err := c.call(ctx, credential, docMe, nil, &data); err != nil {
		return nil, err
	}
	return data.Me, nil
}

func (c *ProfileClient) Users(ctx context.Context, credential string) (*[]*domain.UserProfile, error) {
	var data struct {
		Users *[]*domain.UserProfile `json:"users"`
	}
	if err := c.call(ctx, credential, docUsers, nil, &data); err != nil {
		return nil, err
	}
	return data.Users, nil
}

func (c *ProfileClient) GetUser(ctx context.Context, credential string, id graphql.ID) (*domain.UserProfile, error) {
	var data struct {
		GetUser *domain.UserProfile `json:"getUser"`
	}
	if err := c.call(ctx, credential, docGetUser, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.GetUser, nil
}

func (c *ProfileClient) PendingRequests(ctx context.Context, credential string) (*[]*domain.UserCreationRequest, error) {
	var data struct {
		PendingRequests *[]*domain.UserCreationRequest `json:"pendingRequests"`
	}
	if err := c.call(ctx, credential, docPendingRequests, nil, &data); err != nil {
		return nil, err
	}
	return data.PendingRequests, nil
}

func (c *ProfileClient) UpdateProfile(ctx context.Context, credential string, input domain.ProfileInput) (*domain.UserProfile, error) {
	var data struct {
		UpdateProfile *domain.UserProfile `json:"updateProfile"`
	}
	if err := c.call(ctx, credential, docUpdateProfile, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.UpdateProfile, nil
}

func (c *ProfileClient) SubmitKyc(ctx context.Context, credential, documentURL string) (*domain.UserProfile, error) {
	var data struct {
		SubmitKyc *domain.UserProfile `json:"submitKyc"`
	}
	if err := c.call(ctx, credential, docSubmitKyc, map[string]any{"documentUrl": documentURL}, &data); err != nil {
		return nil, err
	}
	return data.SubmitKyc, nil
}

func (c *ProfileClient) ValidateKyc(ctx context.Context, credential string, id graphql.ID) (*domain.UserProfile, error) {
	var data struct {
		ValidateKyc *domain.UserProfile `json:"validateKyc"`
	}
	if err := c.call(ctx, credential, docValidateKyc, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.ValidateKyc, nil
}

func (c *ProfileClient) CreateCustomer(ctx context.Context, credential string, input domain.CreateCustomerInput) (*domain.UserProfile, error) {
	var data struct {
		CreateCustomer *domain.UserProfile `json:"createCustomer"`
	}
	if err := c.call(ctx, credential, docCreateCustomer, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.CreateCustomer, nil
}

func (c *ProfileClient) DeleteUser(ctx context.Context, credential string, id graphql.ID) (*bool, error) {
	var data struct {
		DeleteUser *bool `json:"deleteUser"`
	}
	if err := c.call(ctx, credential, docDeleteUser, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.DeleteUser, nil
}

func (c *ProfileClient) RequestUserCreation(ctx context.Context, credential string, input domain.UserRequestInput) (*domain.UserCreationRequest, error) {
	var data struct {
		RequestUserCreation *domain.UserCreationRequest `json:"requestUserCreation"`
	}
	if err := c.call(ctx, credential, docRequestUserCreation, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.RequestUserCreation, nil
}

func (c *ProfileClient) ProcessUserCreation(ctx context.Context, credential string, id graphql.ID, status domain.RequestStatus, reason *string) (*domain.UserCreationRequest, error) {
	vars := map[string]any{"id": id, "status": status, "reason": reason}
	var data struct {
		ProcessUserCreation *domain.UserCreationRequest `json:"processUserCreation"`
	}
	if err := c.call(ctx, credential, docProcessUserCreation, vars, &data); err != nil {
		return nil, err
	}
	return data.ProcessUserCreation, nil
}

func (c *ProfileClient) OnboardUser(ctx context.Context, credential string, input domain.UserRequestInput) (*domain.UserProfile, error) {
	var data struct {
		OnboardUser *domain.UserProfile `json:"onboardUser"`
	}
	if err := c.call(ctx, credential, docOnboardUser, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	return data.OnboardUser, nil
}
