package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/access"
)

func TestHas_TablaDeCapacidades(t *testing.T) {
	cases := []struct {
		role access.Role
		cap  access.Capability
		want bool
	}{
		{access.RoleAdmin, access.ManageEmployees, true},
		{access.RoleAdmin, access.EditProducts, false},
		{access.RoleManager, access.EditProducts, true},
		{access.RoleManager, access.ManageEmployees, false},
		{access.RoleManager, access.ViewReports, true},
		{access.RoleCashier, access.MakeSales, true},
		{access.RoleCashier, access.ManageInventory, false},
		{access.RoleCashier, access.ViewReports, false},
		{access.Role("bodeguero"), access.MakeSales, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, access.Has(tc.role, tc.cap), "%s/%s", tc.role, tc.cap)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := access.ParseRole("cashier")
	assert.True(t, ok)
	assert.Equal(t, access.RoleCashier, r)

	_, ok = access.ParseRole("root")
	assert.False(t, ok)
}

func TestCapabilities_DevuelveCopia(t *testing.T) {
	caps := access.Capabilities(access.RoleCashier)
	caps[0] = access.ManageEmployees

	assert.Equal(t, []access.Capability{access.MakeSales}, access.Capabilities(access.RoleCashier))
}

func TestActorRequire(t *testing.T) {
	cashier := access.Actor{EmployeeID: "e1", Role: access.RoleCashier}
	assert.NoError(t, cashier.Require(access.MakeSales))
	assert.ErrorIs(t, cashier.Require(access.ViewReports), domain.ErrForbidden)

	anon := access.Actor{Role: access.RoleAdmin}
	assert.ErrorIs(t, anon.Require(access.MakeSales), domain.ErrUnauthorized)
}
