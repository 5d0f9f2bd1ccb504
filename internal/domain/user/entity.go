package user

// Role enum
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleForeman Role = "FOREMAN"
)

// Actor is the authenticated account a request runs as. The identity
// layer builds it from token claims; core services receive it explicitly
// together with the organization ID they operate on.
type Actor struct {
	ID             string
	Role           Role
	OrganizationID string
	// WorkerID is set when the account is linked to a worker profile.
	WorkerID *string
}

func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}
