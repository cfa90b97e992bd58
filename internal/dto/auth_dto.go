package dto

import "time"

type VerifyFirebaseTokenRequest struct {
	IdToken string `json:"idToken" validate:"required"`
}

type UserResponse struct {
	UserId    string    `json:"userId"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	LastLogin time.Time `json:"lastLogin"`
}

type VerifyFirebaseTokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type SendOtpRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}
