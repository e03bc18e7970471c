package models

import "github.com/boilerparts/backend/internal/domain/identity"

// UserModel is the persistence model for the users table
type UserModel struct {
	BaseModel
	Username string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email    string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Password string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.Password,
	}
}

// UserModelFromDomain creates a model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username: u.Username,
		Email:    u.Email,
		Password: u.PasswordHash,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
