package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	testCases := []struct {
		name     string
		bareRole string
		expected []string
	}{
		{
			name:     "admin gets every product authority",
			bareRole: "ADMIN",
			expected: []string{"ROLE_ADMIN", PermProductAdd, PermProductView, PermProductViewAll},
		},
		{
			name:     "staff can view but not add",
			bareRole: "STAFF",
			expected: []string{"ROLE_STAFF", PermProductView, PermProductViewAll},
		},
		{
			name:     "guest can only view single products",
			bareRole: "GUEST",
			expected: []string{"ROLE_GUEST", PermProductView},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			authorities, err := r.AuthoritiesFor(tc.bareRole)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.expected, authorities)
		})
	}
}

func TestRegistry_UnknownRole(t *testing.T) {
	r := DefaultRegistry()

	t.Run("authorities for unknown role", func(t *testing.T) {
		authorities, err := r.AuthoritiesFor("SUPERUSER")
		assert.ErrorIs(t, err, ErrUnknownRole)
		assert.Nil(t, authorities)
	})

	t.Run("permissions of unknown role", func(t *testing.T) {
		perms, err := r.PermissionsOf("ROLE_SUPERUSER")
		assert.ErrorIs(t, err, ErrUnknownRole)
		assert.Nil(t, perms)
	})

	t.Run("knows", func(t *testing.T) {
		assert.True(t, r.Knows("ROLE_ADMIN"))
		assert.True(t, r.Knows("ROLE_STAFF"))
		assert.True(t, r.Knows("ROLE_GUEST"))
		assert.False(t, r.Knows("ROLE_SUPERUSER"))
		// Bare names are not registered, only prefixed ones
		assert.False(t, r.Knows("ADMIN"))
	})
}

func TestNewRegistry_CopiesInput(t *testing.T) {
	table := map[string][]string{
		"ROLE_TESTER": {"THING_READ"},
	}
	r := NewRegistry(table)

	// Mutating the source table must not leak into the registry
	table["ROLE_TESTER"][0] = "THING_WRITE"

	perms, err := r.PermissionsOf("ROLE_TESTER")
	require.NoError(t, err)
	assert.Equal(t, []string{"THING_READ"}, perms)
}

func TestRegistry_Roles(t *testing.T) {
	r := DefaultRegistry()
	assert.ElementsMatch(t, []string{"ROLE_ADMIN", "ROLE_STAFF", "ROLE_GUEST"}, r.Roles())
}
