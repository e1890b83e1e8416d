package service

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/config"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrAccountDisabled = errors.New("account is disabled")

type AuthService struct {
	users        *repository.UserRepository
	loginHistory *repository.LoginHistoryRepository
	cfg          *config.Config
}

func NewAuthService(users *repository.UserRepository, loginHistory *repository.LoginHistoryRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users:        users,
		loginHistory: loginHistory,
		cfg:          cfg,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Register(req *RegisterRequest) (*model.User, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Phone:    req.Phone,
		Role:     model.Student,
		IsActive: true,
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *AuthService) Login(req *LoginRequest, ipAddress, userAgent string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordLogin("", ipAddress, userAgent, model.LoginFailed, "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.recordLogin(user.ID, ipAddress, userAgent, model.LoginFailed, "wrong password")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.recordLogin(user.ID, ipAddress, userAgent, model.LoginFailed, "account disabled")
		return nil, ErrAccountDisabled
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(user.ID, now); err != nil {
		logger.Log.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	s.recordLogin(user.ID, ipAddress, userAgent, model.LoginSuccess, "")

	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.users.Update(user)
}

func (s *AuthService) LoginHistory(userID string, page, limit int) ([]model.LoginHistory, int64, error) {
	return s.loginHistory.ListByUser(userID, page, limit)
}

// recordLogin never fails the caller: history is advisory.
func (s *AuthService) recordLogin(userID, ipAddress, userAgent string, status model.LoginStatus, reason string) {
	entry := &model.LoginHistory{
		UserID:        userID,
		LoginAt:       time.Now(),
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		Status:        status,
		FailureReason: reason,
	}
	if err := s.loginHistory.Create(entry); err != nil {
		logger.Log.Warn("failed to record login history", zap.Error(err))
	}
}
