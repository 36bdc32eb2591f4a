package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoleta/internal/items/repository"
	"ecoleta/internal/items/service"
	"ecoleta/platform/apperr"
	"ecoleta/platform/logger"
	"ecoleta/platform/validator"
)

type memoryRepo struct {
	items []repository.Item
}

func (r *memoryRepo) List(context.Context) ([]repository.Item, error) { return r.items, nil }

func (r *memoryRepo) GetByID(_ context.Context, id int64) (repository.Item, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return repository.Item{}, apperr.NotFound("item not found")
}

func (r *memoryRepo) Create(_ context.Context, p repository.CreateItemParams) (repository.Item, error) {
	item := repository.Item{ID: int64(len(r.items) + 1), Title: p.Title, Image: p.Image}
	r.items = append(r.items, item)
	return item, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) (repository.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryRepo) ExistingIDs(context.Context, []int64) ([]int64, error) { return nil, nil }

func newRouter(repo repository.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(repo, nil, "item-images", "http://localhost:3333/uploads", logger.New("test"))
	h := New(svc, validator.New())

	r := gin.New()
	r.GET("/items", h.List)
	r.POST("/admin/items", h.Create)
	r.DELETE("/admin/items/:id", h.Delete)
	return r
}

func TestListReturnsItemShape(t *testing.T) {
	r := newRouter(&memoryRepo{items: []repository.Item{{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"}}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(1), body[0]["id"])
	assert.Equal(t, "Lâmpadas", body[0]["title"])
	assert.Equal(t, "http://localhost:3333/uploads/lampadas.svg", body[0]["image_url"])
}

func TestCreateRequiresTitleAndImage(t *testing.T) {
	r := newRouter(&memoryRepo{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", ""))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/items", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgValidationFailed)
}

func TestCreateWithoutStorageIsRejected(t *testing.T) {
	r := newRouter(&memoryRepo{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Vidros"))
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="vidros.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, _ = part.Write([]byte("\x89PNG"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/items", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image uploads are disabled")
}

func TestDeleteValidatesID(t *testing.T) {
	r := newRouter(&memoryRepo{items: []repository.Item{{ID: 1, Image: "lampadas.svg"}}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/items/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/items/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/items/1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
