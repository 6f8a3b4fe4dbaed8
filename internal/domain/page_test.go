package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Limit: DefaultPageLimit}},
		{"clamps limit", Page{Limit: 500}, Page{Limit: MaxPageLimit}},
		{"negative offset", Page{Limit: 5, Offset: -3}, Page{Limit: 5}},
		{"trims search", Page{Limit: 5, Offset: 2, Search: "  rice "}, Page{Limit: 5, Offset: 2, Search: "rice"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestUserSanitizedDropsHash(t *testing.T) {
	admin := "admin-id"
	u := &User{ID: "1", PasswordHash: "hash", Roles: []Role{RoleUser}, LastUpdatedByID: &admin}

	clean := u.Sanitized()

	assert.Empty(t, clean.PasswordHash)
	assert.Equal(t, "hash", u.PasswordHash)
	clean.Roles[0] = RoleAdmin
	assert.Equal(t, RoleUser, u.Roles[0])
	assert.Equal(t, admin, *clean.LastUpdatedByID)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
