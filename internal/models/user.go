package models

// User is stored in the "users" collection. The json tags are the stored
// field names; the password hash never leaves through a response (see
// Profile).
type User struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
	IsSingle     bool   `json:"isSingle"`
	IsAdmin      bool   `json:"isAdmin"`
	CreatedAt    string `json:"createdAt"`
}

type UserProfile struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsSingle  bool   `json:"isSingle"`
	CreatedAt string `json:"createdAt"`
}

func (u User) Profile() UserProfile {
	return UserProfile{
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		IsSingle:  u.IsSingle,
		CreatedAt: u.CreatedAt,
	}
}
