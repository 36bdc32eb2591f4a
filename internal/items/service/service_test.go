package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoleta/internal/adapters/storage"
	"ecoleta/internal/items/repository"
	"ecoleta/internal/items/transport"
	"ecoleta/platform/apperr"
	"ecoleta/platform/logger"
)

type fakeRepo struct {
	items     []repository.Item
	createErr error
	nextID    int64
}

func (r *fakeRepo) List(context.Context) ([]repository.Item, error) {
	return append([]repository.Item(nil), r.items...), nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (repository.Item, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return repository.Item{}, apperr.NotFound("item not found")
}

func (r *fakeRepo) Create(_ context.Context, params repository.CreateItemParams) (repository.Item, error) {
	if r.createErr != nil {
		return repository.Item{}, r.createErr
	}
	r.nextID++
	item := repository.Item{ID: r.nextID, Title: params.Title, Image: params.Image}
	r.items = append(r.items, item)
	return item, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) (repository.Item, error) {
	item, err := r.GetByID(ctx, id)
	if err != nil {
		return repository.Item{}, err
	}
	kept := r.items[:0]
	for _, it := range r.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return item, nil
}

func (r *fakeRepo) ExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	var found []int64
	for _, id := range ids {
		for _, item := range r.items {
			if item.ID == id {
				found = append(found, id)
				break
			}
		}
	}
	return found, nil
}

type fakeStorage struct {
	uploaded map[string]string
	deleted  []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploaded: make(map[string]string)}
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, bucket, fileKey string) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://minio.local/" + bucket + "/" + fileKey + "?sig=1", FileKey: fileKey}, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, _, fileKey string) error {
	s.deleted = append(s.deleted, fileKey)
	return nil
}

func (s *fakeStorage) UploadFile(_ context.Context, _, folder, fileName, _ string, reader io.Reader, _ int64) (string, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := storage.ObjectKey(folder, fileName, "test")
	s.uploaded[key] = string(body)
	return key, nil
}

func (s *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }

func (s *fakeStorage) ValidateContentType(contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return apperr.Validation("content type not allowed")
	}
	return nil
}

func (s *fakeStorage) ValidateFileSize(size int64) error {
	if size > 1024 {
		return apperr.TooLarge("too large")
	}
	return nil
}

func TestListResolvesImageURLs(t *testing.T) {
	repo := &fakeRepo{items: []repository.Item{
		{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"},
		{ID: 7, Title: "Vidros", Image: "items/vidros_ab12.png"},
	}}

	withoutStorage := New(repo, nil, "item-images", "http://localhost:3333/uploads/", logger.New("test"))
	items, err := withoutStorage.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333/uploads/lampadas.svg", items[0].ImageURL)
	assert.Equal(t, "http://localhost:3333/uploads/items/vidros_ab12.png", items[1].ImageURL)

	withStorage := New(repo, newFakeStorage(), "item-images", "http://localhost:3333/uploads", logger.New("test"))
	items, err = withStorage.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333/uploads/lampadas.svg", items[0].ImageURL)
	assert.Equal(t, "https://minio.local/item-images/items/vidros_ab12.png?sig=1", items[1].ImageURL)
}

func TestCreateUploadsImageAndStoresItem(t *testing.T) {
	repo := &fakeRepo{}
	store := newFakeStorage()
	svc := New(repo, store, "item-images", "http://assets", logger.New("test"))

	resp, err := svc.Create(context.Background(), transport.CreateItemRequest{Title: " <b>Vidros</b> "}, Upload{
		FileName:    "vidros.png",
		ContentType: "image/png",
		Size:        4,
		Reader:      strings.NewReader("\x89PNG"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Vidros", resp.Title)
	assert.Equal(t, "items/vidros_test.png", repo.items[0].Image)
	assert.Equal(t, "\x89PNG", store.uploaded["items/vidros_test.png"])
	assert.Contains(t, resp.ImageURL, "items/vidros_test.png")
}

func TestCreateRejectsBadUploads(t *testing.T) {
	svc := New(&fakeRepo{}, newFakeStorage(), "item-images", "http://assets", logger.New("test"))
	ctx := context.Background()
	req := transport.CreateItemRequest{Title: "Vidros"}

	_, err := svc.Create(ctx, req, Upload{FileName: "a.pdf", ContentType: "application/pdf", Size: 10, Reader: strings.NewReader("x")})
	assert.Equal(t, apperr.KindValidation, apperr.GetKind(err))

	_, err = svc.Create(ctx, req, Upload{FileName: "a.png", ContentType: "image/png", Size: 4096, Reader: strings.NewReader("x")})
	assert.Equal(t, apperr.KindTooLarge, apperr.GetKind(err))

	disabled := New(&fakeRepo{}, nil, "", "http://assets", logger.New("test"))
	_, err = disabled.Create(ctx, req, Upload{FileName: "a.png", ContentType: "image/png", Size: 4, Reader: strings.NewReader("x")})
	assert.Equal(t, apperr.KindBadRequest, apperr.GetKind(err))
}

func TestCreateRemovesImageWhenInsertFails(t *testing.T) {
	store := newFakeStorage()
	svc := New(&fakeRepo{createErr: errors.New("db down")}, store, "item-images", "http://assets", logger.New("test"))

	_, err := svc.Create(context.Background(), transport.CreateItemRequest{Title: "Vidros"}, Upload{
		FileName: "v.png", ContentType: "image/png", Size: 1, Reader: strings.NewReader("x"),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"items/v_test.png"}, store.deleted)
}

func TestDeleteOnlyRemovesUploadedImages(t *testing.T) {
	repo := &fakeRepo{items: []repository.Item{
		{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"},
		{ID: 2, Title: "Vidros", Image: "items/vidros_x.png"},
	}}
	store := newFakeStorage()
	svc := New(repo, store, "item-images", "http://assets", logger.New("test"))

	require.NoError(t, svc.Delete(context.Background(), 1))
	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.Equal(t, []string{"items/vidros_x.png"}, store.deleted)

	err := svc.Delete(context.Background(), 99)
	assert.Equal(t, apperr.KindNotFound, apperr.GetKind(err))
}

func TestMissingIDs(t *testing.T) {
	repo := &fakeRepo{items: []repository.Item{{ID: 1}, {ID: 2}, {ID: 3}}}
	svc := New(repo, nil, "", "http://assets", logger.New("test"))

	missing, err := svc.MissingIDs(context.Background(), []int64{9, 2, 7, 9, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, missing)
}
