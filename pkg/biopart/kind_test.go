package biopart

import "testing"

// TestKindTable tests the kind to directory mapping
func TestKindTable(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range Kinds() {
		if k.Dir() == "" {
			t.Errorf("%s has no directory", k)
		}
		if other, ok := seen[k.Dir()]; ok {
			t.Errorf("%s and %s share directory %s", k, other, k.Dir())
		}
		seen[k.Dir()] = k

		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, err)
		}
	}
	if len(seen) != len(kindTable) {
		t.Errorf("Kinds() lists %d kinds, table has %d", len(seen), len(kindTable))
	}
	if _, err := ParseKind("plasmid"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if Kind(99).Dir() != "" {
		t.Error("invalid kind should have no directory")
	}
}

// TestRoleKind tests that protein roles map onto protein kinds
func TestRoleKind(t *testing.T) {
	tests := map[Role]Kind{
		RoleInhibitor: KindInhibitor,
		RoleActivator: KindActivator,
		RoleSubunit:   KindSubunit,
		RoleReporter:  KindReporter,
	}
	for role, kind := range tests {
		if role.Kind() != kind {
			t.Errorf("%s.Kind() = %s, want %s", role, role.Kind(), kind)
		}
		parsed, err := ParseRole(role.String())
		if err != nil || parsed != role {
			t.Errorf("ParseRole(%q) = %v, %v", role, parsed, err)
		}
	}
}
