package clockify

// User is the subset of the Clockify user record the adapter reads.
type User struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	ActiveWorkspace  string `json:"activeWorkspace"`
	DefaultWorkspace string `json:"defaultWorkspace"`
	Status           string `json:"status,omitempty"`
}

// Workspace returns the workspace the user is currently working in,
// falling back to their default workspace.
func (u *User) Workspace() string {
	if u.ActiveWorkspace != "" {
		return u.ActiveWorkspace
	}
	return u.DefaultWorkspace
}
