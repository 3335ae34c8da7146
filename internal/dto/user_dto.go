package dto

// UpsertUserRequest carries the profile fields refreshed on login and
// registration flows. Role changes go through ChangeRoleRequest only.
type UpsertUserRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}
