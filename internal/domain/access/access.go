// Package access define los roles del punto de venta y la tabla fija de capacidades.
package access

import "github.com/jhoicas/pos-api/internal/domain"

// Role rol de un empleado.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// Capability permiso con nombre que un rol puede tener.
type Capability string

const (
	ManageEmployees Capability = "manage_employees"
	ManageInventory Capability = "manage_inventory"
	ViewReports     Capability = "view_reports"
	MakeSales       Capability = "make_sales"
	ManageProducts  Capability = "manage_products"
	EditProducts    Capability = "edit_products"
)

var capabilities = map[Role][]Capability{
	RoleAdmin:   {ManageEmployees, ManageInventory, ViewReports, MakeSales, ManageProducts},
	RoleManager: {ManageInventory, ViewReports, EditProducts, MakeSales, ManageProducts},
	RoleCashier: {MakeSales},
}

// ParseRole convierte un string en Role; ok=false si no pertenece al conjunto cerrado.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := capabilities[r]
	return r, ok
}

// Capabilities devuelve una copia de las capacidades del rol (vacía si el rol no existe).
func Capabilities(r Role) []Capability {
	caps := capabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

// Has indica si el rol tiene la capacidad.
func Has(r Role, c Capability) bool {
	for _, rc := range capabilities[r] {
		if rc == c {
			return true
		}
	}
	return false
}

// Actor es el empleado que ejecuta una operación. Se pasa explícitamente a cada caso de uso.
type Actor struct {
	EmployeeID string
	Role       Role
}

// Require devuelve domain.ErrForbidden si el actor no tiene la capacidad.
func (a Actor) Require(c Capability) error {
	if a.EmployeeID == "" {
		return domain.ErrUnauthorized
	}
	if !Has(a.Role, c) {
		return domain.ErrForbidden
	}
	return nil
}
