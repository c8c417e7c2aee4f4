package dto

type SignupDTO struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Refresh and logout accept a missing token; the service reports it as
// unauthenticated or invalid rather than as a validation failure.
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateBookmarkDTO struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Notes    string   `json:"notes"`
}
