package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"helpdesk-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const resourceListCacheKey = "all_resources"

type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error)
	GetAll(ctx context.Context) ([]models.Resource, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ObjectStore is the blob storage behind resource file attachments.
type ObjectStore interface {
	Upload(ctx context.Context, reader io.Reader, size int64, contentType, filename string) (objectKey, url string, err error)
	Remove(ctx context.Context, objectKey string) error
}

// FileUpload is one multipart file part.
type FileUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// Cache is satisfied by utils.RedisClient.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

type ResourceService struct {
	repo    ResourceRepository
	storage ObjectStore
	cache   Cache
}

func NewResourceService(repo ResourceRepository, storage ObjectStore, cache Cache) *ResourceService {
	return &ResourceService{repo: repo, storage: storage, cache: cache}
}

type CreateResourceInput struct {
	Title       string
	Description string
	Type        string
	File        *FileUpload
}

func (s *ResourceService) Create(ctx context.Context, in CreateResourceInput) (*models.Resource, error) {
	now := time.Now()
	resource := &models.Resource{
		Title:           in.Title,
		Description:     in.Description,
		Type:            in.Type,
		CreatedAt:       now,
		LastUpdatedDate: now,
	}

	if in.File != nil {
		key, url, err := s.storage.Upload(ctx, in.File.Reader, in.File.Size, in.File.ContentType, in.File.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to upload resource file: %w", err)
		}
		resource.FileName = key
		resource.FileURL = url
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return resource, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	return s.getByID(ctx, id)
}

// GetAll serves the public resource list through a short-lived cache,
// invalidated on every mutation.
func (s *ResourceService) GetAll(ctx context.Context) ([]models.Resource, error) {
	var cached []models.Resource
	if err := s.cache.Get(ctx, resourceListCacheKey, &cached); err == nil {
		return cached, nil
	}

	resources, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, resourceListCacheKey, resources, 5*time.Minute); err != nil {
		log.Printf("failed to cache resource list: %v", err)
	}
	return resources, nil
}

// Update filters the payload to the allow-list; a new file replaces the old
// blob (the stale blob is removed best-effort after the document is updated).
func (s *ResourceService) Update(ctx context.Context, id string, payload map[string]interface{}, file *FileUpload) error {
	resource, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	fields := bson.M{}
	for _, name := range models.ResourceUpdatableFields {
		if v, ok := payload[name]; ok {
			fields[name] = v
		}
	}

	if file != nil {
		key, url, err := s.storage.Upload(ctx, file.Reader, file.Size, file.ContentType, file.Filename)
		if err != nil {
			return fmt.Errorf("failed to upload resource file: %w", err)
		}
		fields["fileName"] = key
		fields["fileUrl"] = url
	}

	if len(fields) == 0 {
		return models.ErrNoValidFields
	}
	fields["lastUpdatedDate"] = time.Now()

	if err := s.repo.UpdateFields(ctx, resource.ID, fields); err != nil {
		return err
	}

	if file != nil && resource.FileName != "" {
		if err := s.storage.Remove(ctx, resource.FileName); err != nil {
			log.Printf("failed to remove replaced file %s: %v", resource.FileName, err)
		}
	}

	s.invalidateList(ctx)
	return nil
}

// Delete removes the blob first, then the document. If the blob delete fails
// nothing is removed; if the document delete fails afterwards the blob is
// orphaned. There is no cross-store transaction.
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	resource, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if resource.FileName != "" {
		if err := s.storage.Remove(ctx, resource.FileName); err != nil {
			return fmt.Errorf("failed to delete resource file: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, resource.ID); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *ResourceService) getByID(ctx context.Context, id string) (*models.Resource, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.GetByID(ctx, objID)
}

func (s *ResourceService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, resourceListCacheKey); err != nil {
		log.Printf("failed to invalidate resource list cache: %v", err)
	}
}
