package dto

import "time"

// UserRegisterDTO is the registration request body. The lowernum rule is
// registered on gin's validator at startup and restricts passwords to
// lowercase letters and digits.
type UserRegisterDTO struct {
	Name                 string `json:"name" binding:"required,max=20"`
	Email                string `json:"email" binding:"required,max=100,email"`
	Password             string `json:"password" binding:"required,min=8,max=30,lowernum"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// UserInviteDTO invites a new member by mail. The account is created with a
// generated temporary password carried in the invitation.
type UserInviteDTO struct {
	Name  string `json:"name" binding:"required,max=20"`
	Email string `json:"email" binding:"required,max=100,email"`
}

// UserProfileUpdateDTO updates a user's profile without asking for the
// current password. Blank or absent password fields leave the stored
// password untouched.
type UserProfileUpdateDTO struct {
	Name                 *string `json:"name"`
	Email                *string `json:"email"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

type UserResponseDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
