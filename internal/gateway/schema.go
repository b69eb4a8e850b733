package gateway

import (
	"context"
	"fmt"

	"github.com/ebanking/bff-gateway/internal/logger"
	graphql "github.com/graph-gophers/graphql-go"
)

// Delegated types (UserProfile, UserCreationRequest) mirror the user
// service's field names and nullability. Transaction and AuthStatus are
// produced locally and declared non-null where the gateway guarantees a value.
const schemaSDL = `
schema {
  query: Query
  mutation: Mutation
}

type Transaction {
  id: ID!
  amount: Float!
  currency: String!
  description: String!
  date: String!
  type: String!
  category: String!
  icon: String!
}

type UserProfile {
  id: ID
  keycloakId: String
  firstName: String
  lastName: String
  email: String
  phoneNumber: String
  address: String
  kycStatus: String
  kycDocumentUrl: String
}

type AuthStatus {
  isAuthenticated: Boolean!
  username: String
  roles: [String!]!
}

type UserData {
  profile: UserProfile
  auth: AuthStatus!
}

enum RequestStatus {
  PENDING
  APPROVED
  REJECTED
}

type UserCreationRequest {
  id: ID
  firstName: String
  lastName: String
  email: String
  status: RequestStatus
  agentId: String
  createdAt: String
}

input UserRequestInput {
  firstName: String!
  lastName: String!
  email: String!
}

input ProfileInput {
  firstName: String
  lastName: String
  phoneNumber: String
  address: String
}

input CreateCustomerInput {
  keycloakId: String!
  firstName: String!
  lastName: String!
  email: String!
}

type Query {
  me: UserData
  getUser(id: ID!): UserProfile
  users: [UserProfile]
  transactions: [Transaction!]!
  publicInfo: String
  pendingRequests: [UserCreationRequest]
}

type Mutation {
  updateProfile(input: ProfileInput!): UserProfile
  sendMoney(recipient: String!, amount: Float!, description: String): Transaction
  submitKyc(documentUrl: String!): UserProfile
  validateKyc(id: ID!): UserProfile
  createCustomer(input: CreateCustomerInput!): UserProfile
  deleteUser(id: ID!): Boolean
  requestUserCreation(input: UserRequestInput!): UserCreationRequest
  processUserCreation(id: ID!, status: RequestStatus!, reason: String): UserCreationRequest
  onboardUser(input: UserRequestInput!): UserProfile
}
`

// NewSchema binds the resolver to the gateway SDL.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, r,
		graphql.UseFieldResolvers(),
		graphql.MaxDepth(8),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse gateway schema: %w", err)
	}
	return schema, nil
}

// panicLogger routes resolver panics to the structured log.
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger.Ctx(ctx).Error().
		Str("panic", fmt.Sprint(value)).
		Msg("graphql_resolver_panic")
}
