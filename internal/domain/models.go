package domain

import graphql "github.com/graph-gophers/graphql-go"

// KycStatus is the identity-verification state owned by the user service.
// A profile that never submitted documents reports no status (or PENDING,
// which the user service assigns to freshly provisioned customers).
type KycStatus string

const (
	KycPending   KycStatus = "PENDING"
	KycSubmitted KycStatus = "SUBMITTED"
	KycValidated KycStatus = "VALIDATED"
	KycRejected  KycStatus = "REJECTED"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// UserProfile is relayed from the user service. Every field is optional
// because each downstream document selects a different subset.
type UserProfile struct {
	ID             *graphql.ID `json:"id"`
	KeycloakID     *string     `json:"keycloakId"`
	FirstName      *string     `json:"firstName"`
	LastName       *string     `json:"lastName"`
	Email          *string     `json:"email"`
	PhoneNumber    *string     `json:"phoneNumber"`
	Address        *string     `json:"address"`
	KycStatus      *string     `json:"kycStatus"`
	KycDocumentURL *string     `json:"kycDocumentUrl"`
}

type UserCreationRequest struct {
	ID        *graphql.ID `json:"id"`
	FirstName *string     `json:"firstName"`
	LastName  *string     `json:"lastName"`
	Email     *string     `json:"email"`
	Status    *string     `json:"status"`
	AgentID   *string     `json:"agentId"`
	CreatedAt *string     `json:"createdAt"`
}

// Transaction is synthetic: there is no ledger behind it.
type Transaction struct {
	ID          graphql.ID
	Amount      float64
	Currency    string
	Description string
	Date        string
	Type        string
	Category    string
	Icon        string
}

// AuthStatus is derived per request from a successful credential check.
type AuthStatus struct {
	IsAuthenticated bool
	Username        *string
	Roles           []string
}

type UserData struct {
	Profile *UserProfile
	Auth    *AuthStatus
}

type ProfileInput struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Address     *string `json:"address,omitempty"`
}

type UserRequestInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CreateCustomerInput struct {
	KeycloakID string `json:"keycloakId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}
