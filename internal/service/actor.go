package service

// Roles an authenticated principal can hold. The acting principal is always
// passed explicitly; services never reach into ambient request state.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   uint
	Role string
}

// IsFaculty reports whether the actor holds the faculty role.
func (a Actor) IsFaculty() bool { return a.Role == RoleFaculty }

// IsStudent reports whether the actor holds the student role.
func (a Actor) IsStudent() bool { return a.Role == RoleStudent }

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
