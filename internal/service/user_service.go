package service

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/logger"
)

type UserService struct {
	users     *repository.UserRepository
	auditLogs *repository.AuditLogRepository
}

func NewUserService(users *repository.UserRepository, auditLogs *repository.AuditLogRepository) *UserService {
	return &UserService{users: users, auditLogs: auditLogs}
}

type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`
}

func (s *UserService) GetByID(id string) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(page, limit int, role model.UserRole, name string) ([]model.User, int64, error) {
	return s.users.List(page, limit, role, name)
}

func (s *UserService) UpdateProfile(userID string, req *UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetRole(actorID, userID string, role model.UserRole) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	previous := user.Role
	user.Role = role
	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	s.audit(actorID, "user.set_role", userID, map[string]interface{}{
		"from": previous,
		"to":   role,
	})
	return user, nil
}

func (s *UserService) SetActive(actorID, userID string, active bool) error {
	if _, err := s.GetByID(userID); err != nil {
		return err
	}

	if err := s.users.SetActive(userID, active); err != nil {
		return err
	}

	s.audit(actorID, "user.set_active", userID, map[string]interface{}{"active": active})
	return nil
}

func (s *UserService) AuditLogs(page, limit int, entityType string) ([]model.AuditLog, int64, error) {
	return s.auditLogs.List(page, limit, entityType)
}

// audit writes an admin action record; failures are logged, never surfaced.
func (s *UserService) audit(actorID, action, entityID string, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = nil
	}

	entry := &model.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityType: "user",
		EntityID:   entityID,
		Details:    payload,
	}
	if err := s.auditLogs.Create(entry); err != nil {
		logger.Log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
