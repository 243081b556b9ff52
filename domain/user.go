package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	Admin UserRole = "ADMIN"
	Owner UserRole = "OWNER"
	Guest UserRole = "GUEST"
)

func (ur UserRole) IsValid() bool {
	switch ur {
	case Admin, Owner, Guest:
		return true
	}
	return false
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	PhoneNumber string             `bson:"phone_number" json:"phone_number"`
	Birthday    *time.Time         `bson:"birthday,omitempty" json:"birthday,omitempty"`
	PictureURL  string             `bson:"picture_url" json:"picture_url"`
	Role        UserRole           `bson:"role" json:"role"`
}

type RegisterRequest struct {
	FullName    string   `json:"full_name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required"`
	PhoneNumber string   `json:"phone_number"`
	Role        UserRole `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	PictureURL  string `json:"picture_url"`
}
