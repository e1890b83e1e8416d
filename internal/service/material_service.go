package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/repository"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/util"
	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/pkg/logger"
)

type MaterialService struct {
	materials *repository.MaterialRepository
	storage   StorageProvider
	rdb       *redis.Client
}

func NewMaterialService(materials *repository.MaterialRepository, storage StorageProvider, rdb *redis.Client) *MaterialService {
	return &MaterialService{materials: materials, storage: storage, rdb: rdb}
}

type CreateMaterialRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description"`
}

type UpdateMaterialRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Description string `json:"description"`
}

func (s *MaterialService) Create(ctx context.Context, req *CreateMaterialRequest, fileName string, file io.Reader, size int64, contentType, uploadedBy string) (*model.Material, error) {
	objectName := ObjectName("materials", fileName)
	fileURL, err := s.storage.Upload(ctx, objectName, file, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload material file: %w", err)
	}

	material := &model.Material{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     fileURL,
		FileName:    fileName,
		UploadedBy:  uploadedBy,
	}

	if err := s.materials.Create(material); err != nil {
		if delErr := s.storage.Delete(ctx, objectName); delErr != nil {
			logger.Log.Warn("failed to clean up orphaned upload", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}

	return material, nil
}

func (s *MaterialService) GetByID(id string) (*model.Material, error) {
	material, err := s.materials.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) List(page, limit int, title string) ([]model.Material, int64, error) {
	return s.materials.List(page, limit, title)
}

func (s *MaterialService) Update(id string, req *UpdateMaterialRequest) (*model.Material, error) {
	material, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		material.Title = req.Title
	}
	if req.Description != "" {
		material.Description = req.Description
	}

	if err := s.materials.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) error {
	material, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.materials.Delete(id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, ObjectNameFromURL(material.FileURL)); err != nil {
		logger.Log.Warn("failed to delete material file", zap.String("material_id", id), zap.Error(err))
	}
	return nil
}

// readProgressTTL keeps stale progress from accumulating forever.
const readProgressTTL = 30 * 24 * time.Hour

// MarkRead records that the user opened the material. Progress lives in
// Redis only; losing it is acceptable.
func (s *MaterialService) MarkRead(ctx context.Context, userID, materialID string) error {
	if s.rdb == nil {
		return nil
	}
	if _, err := s.GetByID(materialID); err != nil {
		return err
	}
	key := readProgressKey(userID)
	if err := s.rdb.HSet(ctx, key, materialID, time.Now().Unix()).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, readProgressTTL).Err()
}

// ReadProgress returns the material IDs the user has opened.
func (s *MaterialService) ReadProgress(ctx context.Context, userID string) ([]string, error) {
	if s.rdb == nil {
		return nil, nil
	}
	entries, err := s.rdb.HKeys(ctx, readProgressKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return entries, nil
}

func readProgressKey(userID string) string {
	return "material:read:" + userID
}
