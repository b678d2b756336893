// Package policy reglas de visibilidad y permisos por rol.
// Son funciones puras: reciben el usuario autenticado y el registro, no consultan almacenamiento.
package policy

import "github.com/jhoicas/Encuestas-api/internal/domain/entity"

// Principal usuario autenticado que realiza la operación (extraído del JWT).
type Principal struct {
	UserID    int64
	CompanyID int64
	Role      string
}

// IsAdmin indica si el principal tiene rol Admin.
func (p Principal) IsAdmin() bool { return p.Role == entity.RoleAdmin }

// CanManageCompanies solo Admin administra empresas.
func CanManageCompanies(p Principal) bool {
	return p.IsAdmin()
}

// CanSeeSurvey Admin ve todas; el resto solo las de su empresa.
func CanSeeSurvey(p Principal, s *entity.Survey) bool {
	if s == nil {
		return false
	}
	return p.IsAdmin() || s.CompanyID == p.CompanyID
}

// CanSeeUser Admin ve todos; el resto solo los de su empresa.
func CanSeeUser(p Principal, u *entity.User) bool {
	if u == nil {
		return false
	}
	return p.IsAdmin() || u.CompanyID == p.CompanyID
}

// ResolveCompanyForUser empresa que se asignará a un usuario creado por p.
// Admin elige (cero = la propia); los demás quedan fijados a su empresa.
func ResolveCompanyForUser(p Principal, requested int64) int64 {
	if p.IsAdmin() && requested != 0 {
		return requested
	}
	return p.CompanyID
}

// CanBuildSurveys Admin y Creador pueden crear encuestas.
func CanBuildSurveys(p Principal) bool {
	return p.Role == entity.RoleAdmin || p.Role == entity.RoleCreator
}

// CanEditSurvey requiere rol constructor y visibilidad sobre la encuesta.
func CanEditSurvey(p Principal, s *entity.Survey) bool {
	return CanBuildSurveys(p) && CanSeeSurvey(p, s)
}

// CanViewResults cualquier rol que vea la encuesta puede ver sus resultados.
func CanViewResults(p Principal, s *entity.Survey) bool {
	return CanSeeSurvey(p, s)
}

// FilterSurveys conserva las encuestas visibles para p, en el mismo orden.
func FilterSurveys(p Principal, list []*entity.Survey) []*entity.Survey {
	out := make([]*entity.Survey, 0, len(list))
	for _, s := range list {
		if CanSeeSurvey(p, s) {
			out = append(out, s)
		}
	}
	return out
}

// FilterUsers conserva los usuarios visibles para p, en el mismo orden.
func FilterUsers(p Principal, list []*entity.User) []*entity.User {
	out := make([]*entity.User, 0, len(list))
	for _, u := range list {
		if CanSeeUser(p, u) {
			out = append(out, u)
		}
	}
	return out
}
