package rbac

// Capability constants.
const (
	CapabilityEdit   = "resource:edit"
	CapabilityDelete = "resource:delete"
)

// Role constants. Roles are derived from the login email by the mock
// authentication service and are only consulted by the presentation
// layer; the resource API does not re-check them.
const (
	RoleAdmin          = "Admin"
	RoleProjectManager = "ProjectManager"
	RoleDeveloper      = "Developer"
)

var roleCapabilities = map[string][]string{
	RoleAdmin: {
		CapabilityEdit,
		CapabilityDelete,
	},
	RoleProjectManager: {
		CapabilityEdit,
	},
	RoleDeveloper: {},
}

// HasCapability checks whether a role carries the given capability.
func HasCapability(role, capability string) bool {
	capabilities, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	for _, c := range capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// CanEdit reports whether the role may modify projects and tasks.
func CanEdit(role string) bool {
	return HasCapability(role, CapabilityEdit)
}

// CanDelete reports whether the role may delete projects and tasks.
func CanDelete(role string) bool {
	return HasCapability(role, CapabilityDelete)
}

// CheckCapability returns an error instead of a boolean, which is easier
// to surface in callers.
func CheckCapability(role, capability string) error {
	if !HasCapability(role, capability) {
		return &CapabilityDeniedError{
			Role:       role,
			Capability: capability,
		}
	}
	return nil
}

// CapabilityDeniedError indicates the role lacks a capability.
type CapabilityDeniedError struct {
	Role       string
	Capability string
}

func (e *CapabilityDeniedError) Error() string {
	return "insufficient permissions"
}
