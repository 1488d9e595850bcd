package service

import (
	"crypto/subtle"

	"github.com/SMASobur/tcmosque/internal/core/domain"
)

// RegistrationGate maps an out-of-band registration code to the role a new
// account receives. superadmin is never assignable here.
type RegistrationGate struct {
	userCode  string
	adminCode string
}

func NewRegistrationGate(userCode, adminCode string) RegistrationGate {
	return RegistrationGate{userCode: userCode, adminCode: adminCode}
}

// ResolveRole checks the admin code before the user code.
func (g RegistrationGate) ResolveRole(code string) (domain.Role, error) {
	switch {
	case matchCode(code, g.adminCode):
		return domain.RoleAdmin, nil
	case matchCode(code, g.userCode):
		return domain.RoleUser, nil
	default:
		return "", domain.ErrInvalidRegistrationCode
	}
}

// matchCode never matches an empty code on either side.
func matchCode(supplied, configured string) bool {
	if supplied == "" || configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}
