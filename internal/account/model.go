package account

import "strings"

// User is the profile served by /api/auth/me/.
type User struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone"`
	IsActive bool     `json:"is_active"`
	Roles    []string `json:"roles"`
}

// IsOperator reports whether the user sees the admin navigation and routes.
func (u *User) IsOperator() bool {
	for _, r := range u.Roles {
		if r == "admin" || r == "staff" {
			return true
		}
	}
	return false
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	if u.Email != "" {
		return u.Email
	}
	return "Cliente"
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type RegisterForm struct {
	Email                string `form:"email" binding:"required,email"`
	FullName             string `form:"full_name" binding:"required"`
	Phone                string `form:"phone"`
	Password             string `form:"password" binding:"required,min=8"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required"`
}

type ProfileForm struct {
	Email    string `form:"email" binding:"required,email"`
	FullName string `form:"full_name"`
	Phone    string `form:"phone"`
}
