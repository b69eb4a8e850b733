package downstream

// Wire documents sent to the user service. Field selections define what the
// gateway can relay, so the gateway schema must stay a subset of them.
var (
	docMe = Document{Name: "Me", Query: `
query Me {
  me {
    id
    keycloakId
    firstName
    lastName
    email
    phoneNumber
    address
    kycStatus
  }
}`}

	docUsers = Document{Name: "Users", Query: `
query Users {
  users {
    keycloakId
    firstName
    lastName
    email
    kycStatus
    kycDocumentUrl
  }
}`}

	docGetUser = Document{Name: "GetUser", Query: `
query GetUser($id: ID!) {
  getUser(id: $id) {
    id
    keycloakId
    firstName
    lastName
    email
    phoneNumber
    address
    kycStatus
    kycDocumentUrl
  }
}`}

	docPendingRequests = Document{Name: "PendingRequests", Query: `
query PendingRequests {
  pendingRequests {
    id
    firstName
    lastName
    email
    status
    agentId
    createdAt
  }
}`}

	docUpdateProfile = Document{Name: "UpdateProfile", Mutation: true, Query: `
mutation UpdateProfile($input: ProfileInput!) {
  updateProfile(input: $input) {
    firstName
    lastName
    phoneNumber
    address
  }
}`}

	docSubmitKyc = Document{Name: "SubmitKyc", Mutation: true, Query: `
mutation SubmitKyc($documentUrl: String!) {
  submitKyc(documentUrl: $documentUrl) {
    kycStatus
  }
}`}

	docValidateKyc = Document{Name: "ValidateKyc", Mutation: true, Query: `
mutation ValidateKyc($id: ID!) {
  validateKyc(id: $id) {
    kycStatus
  }
}`}

	docCreateCustomer = Document{Name: "CreateCustomer", Mutation: true, Query: `
mutation CreateCustomer($input: CreateCustomerInput!) {
  createCustomer(input: $input) {
    keycloakId
    firstName
    lastName
    email
    kycStatus
  }
}`}

	docDeleteUser = Document{Name: "DeleteUser", Mutation: true, Query: `
mutation DeleteUser($id: ID!) {
  deleteUser(id: $id)
}`}

	docRequestUserCreation = Document{Name: "RequestUserCreation", Mutation: true, Query: `
mutation RequestUserCreation($input: UserRequestInput!) {
  requestUserCreation(input: $input) {
    id
    status
  }
}`}

	docProcessUserCreation = Document{Name: "ProcessUserCreation", Mutation: true, Query: `
mutation ProcessUserCreation($id: ID!, $status: RequestStatus!, $reason: String) {
  processUserCreation(id: $id, status: $status, reason: $reason) {
    id
    status
  }
}`}

	docOnboardUser = Document{Name: "OnboardUser", Mutation: true, Query: `
mutation OnboardUser($input: UserRequestInput!) {
  onboardUser(input: $input) {
    keycloakId
    firstName
    lastName
    email
  }
}`}
)
