package models

// CompanyProfile holds the company data editable from the settings panel.
type CompanyProfile struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Description string `json:"description"`
}

type Certification struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type SocialLinks struct {
	FacebookURL  string `json:"facebook_url"`
	InstagramURL string `json:"instagram_url"`
	TwitterURL   string `json:"twitter_url"`
}

// PasswordChange carries the password-change form fields.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
