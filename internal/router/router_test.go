package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-events-api/internal/auth"
	"news-events-api/internal/config"
	"news-events-api/internal/handler"
	"news-events-api/internal/media"
	"news-events-api/internal/model"
	"news-events-api/internal/repository"
	"news-events-api/internal/service"
	"news-events-api/internal/testutil"
)

const testSecret = "test-secret"

// newTestAPI wires the full application over a throwaway database and uploads
// directory, exactly as main does.
func newTestAPI(t *testing.T) (*echo.Echo, string) {
	t.Helper()

	db := testutil.DB(t)
	uploadsDir := t.TempDir()

	cfg := &config.Config{
		Env:           "production",
		JWTSecret:     testSecret,
		UploadsDir:    uploadsDir,
		PublicBaseURL: "http://localhost:8080",
		CORSOrigins:   []string{"*"},
	}

	adminRepo := repository.NewAdminRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	newsRepo := repository.NewNewsEventRepository(db)
	imageRepo := repository.NewNewsEventImageRepository(db)

	jwtService := auth.NewJWTService(cfg.JWTSecret, time.Hour)
	resolver := media.NewResolver(cfg.UploadsDir, cfg.PublicBaseURL)
	reconciler := media.NewReconciler(imageRepo, resolver)

	e := echo.New()
	Register(e, cfg, jwtService,
		handler.NewAdminHandler(service.NewAdminService(adminRepo, jwtService)),
		handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		handler.NewNewsEventHandler(service.NewNewsEventService(newsRepo, imageRepo, resolver, reconciler), resolver),
		handler.NewHealthHandler(),
	)
	return e, uploadsDir
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON runs one request through the full middleware chain.
func doJSON(t *testing.T, e *echo.Echo, method, target, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp),
		"response body was not an envelope: %s", rec.Body.String())
	return rec, resp
}

func registerAdmin(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec, resp := doJSON(t, e, http.MethodPost, "/api/admin/register", "", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
		"name":     "Admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createCategory(t *testing.T, e *echo.Echo, token, name, status string) int64 {
	t.Helper()

	rec, resp := doJSON(t, e, http.MethodPost, "/api/categories", token, map[string]string{
		"name":   name,
		"status": status,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var category model.Category
	require.NoError(t, json.Unmarshal(resp.Data, &category))
	return category.ID
}

func TestAPI_Health(t *testing.T) {
	e, _ := newTestAPI(t)

	rec, resp := doJSON(t, e, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Service is healthy", resp.Message)
}

func TestAPI_UnknownRouteRendersEnvelope(t *testing.T) {
	e, _ := newTestAPI(t)

	rec, resp := doJSON(t, e, http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Not Found", resp.Message)
	assert.Equal(t, "null", string(resp.Data))
}

func TestAPI_AdminAuth(t *testing.T) {
	e, _ := newTestAPI(t)

	token := registerAdmin(t, e)

	t.Run("registered password never leaks", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodGet, "/api/admin/profile", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.NotContains(t, string(resp.Data), "password")

		var admin model.Admin
		require.NoError(t, json.Unmarshal(resp.Data, &admin))
		assert.Equal(t, "admin@example.com", admin.Email)
		assert.Equal(t, "Admin", admin.Name)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/admin/register", "", map[string]string{
			"email":    "admin@example.com",
			"password": "another1",
			"name":     "Other",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Admin with this email already exists", resp.Message)
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/admin/register", "", map[string]string{
			"email":    "not-an-email",
			"password": "secret123",
			"name":     "X",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email address", resp.Message)
	})

	t.Run("short password rejected", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/admin/register", "", map[string]string{
			"email":    "short@example.com",
			"password": "12345",
			"name":     "X",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Field password must be at least 6 characters", resp.Message)
	})

	t.Run("login succeeds", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/admin/login", "", map[string]string{
			"email":    "admin@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Login successful", resp.Message)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/admin/login", "", map[string]string{
			"email":    "admin@example.com",
			"password": "wrong-pass",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("profile update", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPut, "/api/admin/profile", token, map[string]string{
			"name": "Renamed",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var admin model.Admin
		require.NoError(t, json.Unmarshal(resp.Data, &admin))
		assert.Equal(t, "Renamed", admin.Name)
	})

	t.Run("admin listing", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodGet, "/api/admin/all", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var admins []model.Admin
		require.NoError(t, json.Unmarshal(resp.Data, &admins))
		assert.Len(t, admins, 1)
	})
}

func TestAPI_AuthGate(t *testing.T) {
	e, _ := newTestAPI(t)

	t.Run("missing header", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodGet, "/api/admin/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header missing", resp.Message)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
		req.Header.Set(echo.HeaderAuthorization, "Token abc")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		var resp apiResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Malformed authorization header", resp.Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodGet, "/api/admin/profile", "not.a.jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", resp.Message)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &auth.Claims{
			AdminID: 1,
			Email:   "admin@example.com",
			Role:    "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec, resp := doJSON(t, e, http.MethodGet, "/api/admin/profile", expired, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token has expired", resp.Message)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewJWTService("other-secret", time.Hour)
		token, err := other.GenerateToken(&model.Admin{ID: 1, Email: "admin@example.com"})
		require.NoError(t, err)

		rec, resp := doJSON(t, e, http.MethodGet, "/api/admin/profile", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", resp.Message)
	})

	t.Run("write routes are gated", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/api/categories", "", map[string]string{"name": "X"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec, _ = doJSON(t, e, http.MethodPost, "/api/news-and-events", "", map[string]string{"title": "X"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPI_Categories(t *testing.T) {
	e, _ := newTestAPI(t)
	token := registerAdmin(t, e)

	t.Run("create derives slug", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/categories", token, map[string]string{
			"name": "Press Releases",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var category model.Category
		require.NoError(t, json.Unmarshal(resp.Data, &category))
		assert.Equal(t, "press-releases", category.Slug)
		assert.Equal(t, model.StatusActive, category.Status)
	})

	t.Run("duplicate slug rejected", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/categories", token, map[string]string{
			"name": "Press Releases",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Category with this slug already exists", resp.Message)
	})

	t.Run("public listing hides inactive", func(t *testing.T) {
		hiddenID := createCategory(t, e, token, "Hidden", model.StatusInactive)

		_, resp := doJSON(t, e, http.MethodGet, "/api/categories/user", "", nil)
		var categories []model.Category
		require.NoError(t, json.Unmarshal(resp.Data, &categories))
		for _, category := range categories {
			assert.NotEqual(t, hiddenID, category.ID)
		}

		rec, resp := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/categories/user/%d", hiddenID), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Category not found", resp.Message)

		rec, _ = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/categories/%d", hiddenID), token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete referenced category rejected", func(t *testing.T) {
		categoryID := createCategory(t, e, token, "Referenced", model.StatusActive)

		rec, _ := doJSON(t, e, http.MethodPost, "/api/news-and-events", token, map[string]interface{}{
			"category_id": categoryID,
			"title":       "Holds a reference",
			"date_time":   "2025-09-01 10:00:00",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec, resp := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/categories/%d", categoryID), token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Cannot delete category with existing news and events", resp.Message)
	})
}

func TestAPI_NewsAndEvents(t *testing.T) {
	e, uploadsDir := newTestAPI(t)
	token := registerAdmin(t, e)
	categoryID := createCategory(t, e, token, "Events", model.StatusActive)

	type newsPayload struct {
		ID            int64   `json:"id"`
		Title         string  `json:"title"`
		CoverImage    *string `json:"cover_image"`
		CoverImageURL string  `json:"cover_image_url"`
		DateTime      string  `json:"date_time"`
		Status        string  `json:"status"`
		Images        []struct {
			ImageURL   string `json:"image_url"`
			ImageOrder int    `json:"image_order"`
			URL        string `json:"url"`
		} `json:"images"`
	}

	var itemID int64

	t.Run("create from JSON", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPost, "/api/news-and-events", token, map[string]interface{}{
			"category_id": categoryID,
			"title":       "Summer concert",
			"description": "Live on the main square",
			"location":    "Main square",
			"date_time":   "2025-07-15T20:00:00Z",
			"cover_image": "http://localhost:8080/uploads/cover-images/concert.jpg",
			"images":      []string{"/news-images/a.jpg", "/news-images/b.jpg"},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var item newsPayload
		require.NoError(t, json.Unmarshal(resp.Data, &item))
		itemID = item.ID

		assert.Equal(t, "2025-07-15 20:00:00", item.DateTime)
		assert.Equal(t, model.StatusActive, item.Status)
		require.NotNil(t, item.CoverImage)
		assert.Equal(t, "/cover-images/concert.jpg", *item.CoverImage)
		assert.Equal(t, "http://localhost:8080/uploads/cover-images/concert.jpg", item.CoverImageURL)

		require.Len(t, item.Images, 2)
		assert.Equal(t, "/news-images/a.jpg", item.Images[0].ImageURL)
		assert.Equal(t, 0, item.Images[0].ImageOrder)
		assert.Equal(t, "http://localhost:8080/uploads/news-images/b.jpg", item.Images[1].URL)
	})

	t.Run("bad pagination rejected over HTTP", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodGet, "/api/news-and-events/public?limit=101", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Parameter limit must be between 1 and 100", resp.Message)
	})

	t.Run("public listing excludes inactive", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodPost, "/api/news-and-events", token, map[string]interface{}{
			"category_id": categoryID,
			"title":       "Unpublished draft",
			"date_time":   "2025-08-01 09:00:00",
			"status":      model.StatusInactive,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		_, resp := doJSON(t, e, http.MethodGet, "/api/news-and-events/public", "", nil)
		var page struct {
			Items []newsPayload `json:"items"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		assert.EqualValues(t, 1, page.Pagination.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Summer concert", page.Items[0].Title)
	})

	t.Run("multipart upload is stored and served", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("title", "With upload"))
		require.NoError(t, w.WriteField("category_id", fmt.Sprintf("%d", categoryID)))
		require.NoError(t, w.WriteField("date_time", "2025-09-10 14:00:00"))

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="cover_image"; filename="cover.png"`)
		header.Set("Content-Type", "image/png")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/news-and-events", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp apiResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		var item newsPayload
		require.NoError(t, json.Unmarshal(resp.Data, &item))

		require.NotNil(t, item.CoverImage)
		assert.True(t, strings.HasPrefix(*item.CoverImage, "/cover-images/"))
		assert.True(t, strings.HasSuffix(*item.CoverImage, ".png"))

		// The stored file is on disk and reachable through the static route
		stored := filepath.Join(uploadsDir, filepath.FromSlash(strings.TrimPrefix(*item.CoverImage, "/")))
		_, err = os.Stat(stored)
		require.NoError(t, err)

		fileReq := httptest.NewRequest(http.MethodGet, "/uploads"+*item.CoverImage, nil)
		fileRec := httptest.NewRecorder()
		e.ServeHTTP(fileRec, fileReq)
		assert.Equal(t, http.StatusOK, fileRec.Code)
		assert.Equal(t, "png-bytes", fileRec.Body.String())
	})

	t.Run("update clears gallery with empty array", func(t *testing.T) {
		rec, resp := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/news-and-events/%d", itemID), token,
			map[string]interface{}{"images": []string{}})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var item newsPayload
		require.NoError(t, json.Unmarshal(resp.Data, &item))
		assert.Empty(t, item.Images)
	})

	t.Run("delete then fetch returns not found", func(t *testing.T) {
		rec, _ := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/news-and-events/%d", itemID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec, resp := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/news-and-events/%d", itemID), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "News and events item not found", resp.Message)
	})
}
