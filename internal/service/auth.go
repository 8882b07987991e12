package service

import (
	"context"
	"fmt"

	"work-ledger/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct{ db *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Employee, error) {
	var e model.Employee
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&e).Error; err != nil {
		return nil, fmt.Errorf("employee not found: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("wrong password")
	}
	return &e, nil
}
