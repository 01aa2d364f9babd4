package domain

// Session is the persisted client-side record of authentication state:
// the bearer token plus the identity it was issued for. The volatile
// authenticated flag lives on the manager, not here; a stored session with
// the flag down is the "not yet re-validated" state after process start.
type Session struct {
	AccessToken string    `json:"access_token"`
	User        *Identity `json:"user"`
}

// Identity is the signed-in user's identity record.
type Identity struct {
	UserID    string   `json:"user_id"`
	CompanyID string   `json:"company_id"`
	Email     string   `json:"email,omitempty"`
	Name      string   `json:"name,omitempty"`
	Role      string   `json:"role,omitempty"`
	Settings  Settings `json:"settings"`
}

// Settings are the presentation preferences carried on the identity.
// Applied as fire-and-forget side effects after an interactive sign-in.
type Settings struct {
	Layout string `json:"layout,omitempty"`
	Scheme string `json:"scheme,omitempty"`
	Theme  string `json:"theme,omitempty"`
}
