package constants

// Account roles
const (
	// RoleCustomer is a regular authenticated traveller.
	RoleCustomer = "customer"

	// RoleGuest marks the single sentinel account that owns every
	// anonymous booking. It can never authenticate.
	RoleGuest = "guest"

	// RoleAdmin has full access to operational endpoints.
	RoleAdmin = "admin"
)

// DefaultGuestOwnerEmail is the reserved contact address of the guest
// sentinel account. Overridable with GUEST_OWNER_EMAIL. It must never
// collide with a real user's address.
const DefaultGuestOwnerEmail = "guest@flight-booking.local"
