package service

import (
	"context"
	"io"
	"sort"
	"strings"

	"ecoleta/internal/adapters/storage"
	"ecoleta/internal/items/repository"
	"ecoleta/internal/items/transport"
	"ecoleta/platform/apperr"
	"ecoleta/platform/logger"
	"ecoleta/platform/sanitize"
)

// UploadFolder prefixes every uploaded item image key. Keys without it are
// bundled assets served from the assets base URL.
const UploadFolder = "items"

const msgUploadsDisabled = "image uploads are disabled"

// Upload is an item image received from the admin form.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Service provides business logic for the item catalog.
type Service struct {
	repo          repository.Repository
	storage       storage.StorageService
	bucket        string
	assetsBaseURL string
	log           *logger.Logger
}

// New creates a new item service. storageSvc may be nil when MinIO is not configured.
func New(repo repository.Repository, storageSvc storage.StorageService, bucket, assetsBaseURL string, log *logger.Logger) *Service {
	return &Service{
		repo:          repo,
		storage:       storageSvc,
		bucket:        bucket,
		assetsBaseURL: strings.TrimRight(assetsBaseURL, "/"),
		log:           log,
	}
}

// List returns the whole catalog with resolved image URLs.
func (s *Service) List(ctx context.Context) ([]transport.ItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]transport.ItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, s.toResponse(ctx, item))
	}
	return result, nil
}

// Create uploads the image and stores the item.
func (s *Service) Create(ctx context.Context, req transport.CreateItemRequest, upload Upload) (transport.ItemResponse, error) {
	if s.storage == nil {
		return transport.ItemResponse{}, apperr.BadRequest(msgUploadsDisabled)
	}
	if err := s.storage.ValidateContentType(upload.ContentType); err != nil {
		return transport.ItemResponse{}, err
	}
	if err := s.storage.ValidateFileSize(upload.Size); err != nil {
		return transport.ItemResponse{}, err
	}

	title := sanitize.Text(req.Title)
	if title == "" {
		return transport.ItemResponse{}, apperr.Validation("title is required")
	}

	key, err := s.storage.UploadFile(ctx, s.bucket, UploadFolder, upload.FileName, upload.ContentType, upload.Reader, upload.Size)
	if err != nil {
		return transport.ItemResponse{}, apperr.Unavailable("failed to store item image", err)
	}

	item, err := s.repo.Create(ctx, repository.CreateItemParams{Title: title, Image: key})
	if err != nil {
		if delErr := s.storage.DeleteObject(ctx, s.bucket, key); delErr != nil {
			s.log.WithContext(ctx).Warn("orphaned item image", "key", key, "error", delErr)
		}
		return transport.ItemResponse{}, err
	}

	s.log.WithContext(ctx).Info("item created", "id", item.ID, "title", item.Title)
	return s.toResponse(ctx, item), nil
}

// Delete removes an item and its uploaded image.
func (s *Service) Delete(ctx context.Context, id int64) error {
	item, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if s.storage != nil && isUploaded(item.Image) {
		if err := s.storage.DeleteObject(ctx, s.bucket, item.Image); err != nil {
			s.log.WithContext(ctx).Warn("failed to delete item image", "id", id, "key", item.Image, "error", err)
		}
	}

	s.log.WithContext(ctx).Info("item deleted", "id", id)
	return nil
}

// MissingIDs returns the ids (deduplicated, ascending) that are not in the catalog.
func (s *Service) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found, err := s.repo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	missing := make([]int64, 0)
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := present[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
}

func (s *Service) toResponse(ctx context.Context, item repository.Item) transport.ItemResponse {
	return transport.ItemResponse{
		ID:       item.ID,
		Title:    item.Title,
		ImageURL: s.imageURL(ctx, item.Image),
	}
}

func (s *Service) imageURL(ctx context.Context, image string) string {
	if s.storage != nil && isUploaded(image) {
		presigned, err := s.storage.GenerateDownloadURL(ctx, s.bucket, image)
		if err == nil {
			return presigned.URL
		}
		s.log.WithContext(ctx).Warn("failed to presign item image", "key", image, "error", err)
	}
	return s.assetsBaseURL + "/" + strings.TrimLeft(image, "/")
}

func isUploaded(image string) bool {
	return strings.HasPrefix(image, UploadFolder+"/")
}
