package principal

// Role is the verified role of an authenticated caller. Authorization is
// enforced upstream; the engine only records who acted.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// Principal is an authenticated caller as supplied by the request layer.
type Principal struct {
	ID   int64
	Role Role
}
