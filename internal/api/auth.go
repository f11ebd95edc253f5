package api

import "context"

// User is the authenticated account profile with its preferences.
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Preferences Preferences `json:"preferences"`
}

// Preferences holds per-user display and notification settings.
type Preferences struct {
	DisplayCurrency    string `json:"displayCurrency"`
	EmailNotifications bool   `json:"emailNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
}

// AuthResult is the response to login and registration: the session token
// plus the profile it belongs to.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries partial profile changes; nil fields are left
// untouched by the backend.
type UpdateProfileRequest struct {
	Name        *string      `json:"name,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Register creates an account. Marked as an auth-flow call so a 401 cannot
// tear down a session that does not exist yet.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	resp, err := c.Do(ctx, &Request{Method: "POST", Path: "/auth/register", Body: req, AuthFlow: true})
	if err != nil {
		return nil, err
	}
	var result AuthResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates and returns a fresh session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	resp, err := c.Do(ctx, &Request{Method: "POST", Path: "/auth/login", Body: req, AuthFlow: true})
	if err != nil {
		return nil, err
	}
	var result AuthResult
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the profile behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies partial profile changes and returns the updated
// profile.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var user User
	if err := c.put(ctx, "/auth/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
