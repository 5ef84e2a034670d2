package rbac

import "strings"

// Role is parsed once at the boundary; handlers and the service layer never
// compare raw header strings.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes the gateway's role header ("STUDENT", "TEACHER") or a
// token claim into a known Role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(s)) {
	case RoleStudent:
		return RoleStudent, true
	case RoleTeacher:
		return RoleTeacher, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Simple default policy. Expand as needed.
var RolePermissions = map[Role][]string{
	RoleStudent: {
		"attempt:start",
		"attempt:submit",
		"attempt:view-own",
	},
	RoleTeacher: {
		"attempt:view-all",
		"results:publish",
	},
	RoleAdmin: {
		"*", // everything
	},
}
