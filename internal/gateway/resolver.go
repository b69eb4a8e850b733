package gateway

import (
	"context"
	"time"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/internal/logger"
	"github.com/ebanking/bff-gateway/middleware"
	graphql "github.com/graph-gophers/graphql-go"
)

const (
	offlineInfo    = "Offline"
	unknownUser    = "Unknown"
	msgAuthFailed  = "Authentication failed"
	msgMeFallback  = "Unauthorized or Service Unavailable"
	msgUsers       = "Failed to fetch users"
	msgPending     = "Failed to fetch pending requests"
	msgGetUser     = "Failed to fetch user"
	msgUpdate      = "Failed to update profile"
	msgSubmitKyc   = "Failed to submit KYC"
	msgValidateKyc = "Failed to validate KYC"
	msgCreate      = "Failed to create customer"
	msgDelete      = "Failed to delete user"
	msgRequest     = "Failed to submit user creation request"
	msgProcess     = "Failed to process user creation request"
	msgOnboard     = "Failed to onboard user"
)

// AuthService is the subset of the auth collaborator the gateway needs.
type AuthService interface {
	PublicInfo(ctx context.Context) (string, error)
	ValidateCredential(ctx context.Context, credential string) error
}

// ProfileService is the subset of the user service the gateway relays to.
type ProfileService interface {
	Me(ctx context.Context, credential string) (*domain.UserProfile, error)
	Users(ctx context.Context, credential string) (*[]*domain.UserProfile, error)
	GetUser(ctx context.Context, credential string, id graphql.ID) (*domain.UserProfile, error)
	PendingRequests(ctx context.Context, credential string) (*[]*domain.UserCreationRequest, error)
	UpdateProfile(ctx context.Context, credential string, input domain.ProfileInput) (*domain.UserProfile, error)
	SubmitKyc(ctx context.Context, credential, documentURL string) (*domain.UserProfile, error)
	ValidateKyc(ctx context.Context, credential string, id graphql.ID) (*domain.UserProfile, error)
	CreateCustomer(ctx context.Context, credential string, input domain.CreateCustomerInput) (*domain.UserProfile, error)
	DeleteUser(ctx context.Context, credential string, id graphql.ID) (*bool, error)
	RequestUserCreation(ctx context.Context, credential string, input domain.UserRequestInput) (*domain.UserCreationRequest, error)
	ProcessUserCreation(ctx context.Context, credential string, id graphql.ID, status domain.RequestStatus, reason *string) (*domain.UserCreationRequest, error)
	OnboardUser(ctx context.Context, credential string, input domain.UserRequestInput) (*domain.UserProfile, error)
}

// Resolver is the root for both Query and Mutation. It holds no per-request
// state; the caller's credential travels in the context.
type Resolver struct {
	auth    AuthService
	profile ProfileService
	now     func() time.Time
	newID   func() string
}

type Option func(*Resolver)

// WithClock overrides the clock used for transfer dates.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithIDGenerator overrides how transfer ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(r *Resolver) { r.newID = gen }
}

func NewResolver(auth AuthService, profile ProfileService, opts ...Option) *Resolver {
	r := &Resolver{
		auth:    auth,
		profile: profile,
		now:     time.Now,
		newID:   newTransferID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Me validates the credential with the auth service first and only then asks
// the user service for the profile. The two calls never overlap.
func (r *Resolver) Me(ctx context.Context) (*domain.UserData, error) {
	cred := middleware.GetCredential(ctx)

	if err := r.auth.ValidateCredential(ctx, cred); err != nil {
		logger.Ctx(ctx).Warn().
			Err(err).
			Bool("has_credential", cred != "").
			Msg("credential_rejected")
		return nil, domain.NewError(domain.KindAuthFailed, msgAuthFailed, err)
	}

	profile, err := r.profile.Me(ctx, cred)
	if err != nil {
		return nil, translate(ctx, "me", err, msgMeFallback, forwardFirst)
	}

	username := unknownUser
	usernamePtr := &username
	if profile != nil {
		usernamePtr = profile.Email
	}

	return &domain.UserData{
		Profile: profile,
		Auth: &domain.AuthStatus{
			IsAuthenticated: true,
			Username:        usernamePtr,
			// Roles are not derived from the credential yet.
			Roles: []string{},
		},
	}, nil
}

func (r *Resolver) GetUser(ctx context.Context, args struct{ ID graphql.ID }) (*domain.UserProfile, error) {
	user, err := r.profile.GetUser(ctx, middleware.GetCredential(ctx), args.ID)
	if err != nil {
		return nil, translate(ctx, "getUser", err, msgGetUser, fixedMessage)
	}
	return user, nil
}

func (r *Resolver) Users(ctx context.Context) (*[]*domain.UserProfile, error) {
	users, err := r.profile.Users(ctx, middleware.GetCredential(ctx))
	if err != nil {
		return nil, translate(ctx, "users", err, msgUsers, fixedMessage)
	}
	return users, nil
}

func (r *Resolver) Transactions() []*domain.Transaction {
	return recentTransactions()
}

// PublicInfo never fails: any problem reaching the auth service is reported
// as the literal "Offline".
func (r *Resolver) PublicInfo(ctx context.Context) *string {
	info, err := r.auth.PublicInfo(ctx)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("public_info_unavailable")
		offline := offlineInfo
		return &offline
	}
	return &info
}

func (r *Resolver) PendingRequests(ctx context.Context) (*[]*domain.UserCreationRequest, error) {
	reqs, err := r.profile.PendingRequests(ctx, middleware.GetCredential(ctx))
	if err != nil {
		return nil, translate(ctx, "pendingRequests", err, msgPending, fixedMessage)
	}
	return reqs, nil
}

func (r *Resolver) UpdateProfile(ctx context.Context, args struct{ Input domain.ProfileInput }) (*domain.UserProfile, error) {
	user, err := r.profile.UpdateProfile(ctx, middleware.GetCredential(ctx), args.Input)
	if err != nil {
		return nil, translate(ctx, "updateProfile", err, msgUpdate, forwardFirst)
	}
	return user, nil
}

func (r *Resolver) SendMoney(ctx context.Context, args sendMoneyArgs) *domain.Transaction {
	return r.simulateTransfer(ctx, args)
}

func (r *Resolver) SubmitKyc(ctx context.Context, args struct{ DocumentURL string }) (*domain.UserProfile, error) {
	user, err := r.profile.SubmitKyc(ctx, middleware.GetCredential(ctx), args.DocumentURL)
	if err != nil {
		return nil, translate(ctx, "submitKyc", err, msgSubmitKyc, forwardFirst)
	}
	return user, nil
}

func (r *Resolver) ValidateKyc(ctx context.Context, args struct{ ID graphql.ID }) (*domain.UserProfile, error) {
	user, err := r.profile.ValidateKyc(ctx, middleware.GetCredential(ctx), args.ID)
	if err != nil {
		return nil, translate(ctx, "validateKyc", err, msgValidateKyc, forwardFirst)
	}
	return user, nil
}

func (r *Resolver) CreateCustomer(ctx context.Context, args struct{ Input domain.CreateCustomerInput }) (*domain.UserProfile, error) {
	user, err := r.profile.CreateCustomer(ctx, middleware.GetCredential(ctx), args.Input)
	if err != nil {
		return nil, translate(ctx, "createCustomer", err, msgCreate, forwardFirst)
	}
	return user, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ ID graphql.ID }) (*bool, error) {
	ok, err := r.profile.DeleteUser(ctx, middleware.GetCredential(ctx), args.ID)
	if err != nil {
		return nil, translate(ctx, "deleteUser", err, msgDelete, forwardFirst)
	}
	return ok, nil
}

func (r *Resolver) RequestUserCreation(ctx context.Context, args struct{ Input domain.UserRequestInput }) (*domain.UserCreationRequest, error) {
	req, err := r.profile.RequestUserCreation(ctx, middleware.GetCredential(ctx), args.Input)
	if err != nil {
		return nil, translate(ctx, "requestUserCreation", err, msgRequest, forwardFirst)
	}
	return req, nil
}

type processUserCreationArgs struct {
	ID     graphql.ID
	Status string
	Reason *string
}

func (r *Resolver) ProcessUserCreation(ctx context.Context, args processUserCreationArgs) (*domain.UserCreationRequest, error) {
	status := domain.RequestStatus(args.Status)
	req, err := r.profile.ProcessUserCreation(ctx, middleware.GetCredential(ctx), args.ID, status, args.Reason)
	if err != nil {
		return nil, translate(ctx, "processUserCreation", err, msgProcess, forwardFirst)
	}
	return req, nil
}

func (r *Resolver) OnboardUser(ctx context.Context, args struct{ Input domain.UserRequestInput }) (*domain.UserProfile, error) {
	user, err := r.profile.OnboardUser(ctx, middleware.GetCredential(ctx), args.Input)
	if err != nil {
		return nil, translate(ctx, "onboardUser", err, msgOnboard, forwardFirst)
	}
	return user, nil
}
