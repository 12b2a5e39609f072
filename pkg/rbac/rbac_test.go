package rbac

import "testing"

func TestRoleCapabilities(t *testing.T) {
	if !CanEdit(RoleAdmin) || !CanDelete(RoleAdmin) {
		t.Fatalf("admin should edit and delete")
	}
	if !CanEdit(RoleProjectManager) {
		t.Fatalf("project manager should edit")
	}
	if CanDelete(RoleProjectManager) {
		t.Fatalf("project manager must not delete")
	}
	if CanEdit(RoleDeveloper) || CanDelete(RoleDeveloper) {
		t.Fatalf("developer must not edit or delete")
	}
}

func TestUnknownRoleHasNothing(t *testing.T) {
	if HasCapability("Intern", CapabilityEdit) {
		t.Fatalf("unknown role should have no capabilities")
	}
}

func TestCheckCapability(t *testing.T) {
	if err := CheckCapability(RoleAdmin, CapabilityDelete); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckCapability(RoleDeveloper, CapabilityDelete)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "insufficient permissions" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
