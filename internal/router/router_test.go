package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/muhajir-foundation/muhajir-api/internal/config"
	"github.com/muhajir-foundation/muhajir-api/internal/metrics"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"github.com/muhajir-foundation/muhajir-api/internal/router"
	"github.com/muhajir-foundation/muhajir-api/internal/services"
	"github.com/muhajir-foundation/muhajir-api/internal/services/api_key"
	"github.com/muhajir-foundation/muhajir-api/internal/testutil"
	"github.com/muhajir-foundation/muhajir-api/internal/utils"
)

const (
	adminEmail    = "admin@muhajir.org"
	adminPassword = "bismillah-123"
)

type published struct {
	queue string
	msg   interface{}
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *fakePublisher) PublishJSON(_ context.Context, queue string, msg interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{queue: queue, msg: msg})
	return nil
}

type testServer struct {
	t         *testing.T
	cfg       *config.Config
	db        *gorm.DB
	engine    *gin.Engine
	publisher *fakePublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Security.SecretKey = "router-test-secret"
	cfg.Uploads.Dir = t.TempDir()

	db := testutil.NewDB(t)
	pub := &fakePublisher{}
	engine := router.SetupRouter(cfg, db, router.Options{Publisher: pub, Metrics: metrics.New()})

	s := &testServer{t: t, cfg: cfg, db: db, engine: engine, publisher: pub}
	s.createUser(adminEmail, adminPassword, true)
	return s
}

func (s *testServer) createUser(email, password string, superuser bool) {
	s.t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(s.t, err)
	require.NoError(s.t, s.db.Create(&models.User{
		Email:        email,
		FullName:     "Test",
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  superuser,
	}).Error)
}

func (s *testServer) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(email, password string) map[string]string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/token", map[string]string{"username": email, "password": password}, nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var tok models.TokenResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &tok))
	assert.Equal(s.t, "bearer", tok.TokenType)
	return map[string]string{"Authorization": "Bearer " + tok.AccessToken}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]interface{}](t, w)["status"])
}

func TestBotFetchesTelegramIDs(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	for i, id := range []int64{1001, 1002} {
		w := s.do(http.MethodPost, "/api/v1/admin/tg/users", map[string]interface{}{
			"id_telegram": id,
			"name":        "chat " + strconv.Itoa(i),
		}, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodPost, "/api/v1/admin/api-keys", map[string]interface{}{"name": "bot1"}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	issued := decode[models.APIKeyCreatedResponse](t, w)
	require.NotEmpty(t, issued.Secret)
	assert.True(t, issued.IsActive)

	signed := map[string]string{
		"x-api-key":       issued.Key,
		"x-api-signature": api_key.Sign(issued.Secret, "all"),
	}

	w = s.do(http.MethodGet, "/api/v1/tg/all", nil, signed)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ElementsMatch(t, []int64{1001, 1002}, decode[[]int64](t, w))

	t.Run("secret is not listed", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/admin/api-keys/"+strconv.Itoa(int(issued.ID)), nil, admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), issued.Secret)
	})

	t.Run("missing headers", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/tg/all", nil, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Invalid API key or signature", decode[map[string]string](t, w)["error"])
	})

	t.Run("signature over another payload", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/tg/all", nil, map[string]string{
			"x-api-key":       issued.Key,
			"x-api-signature": api_key.Sign(issued.Secret, "some"),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("deactivated key", func(t *testing.T) {
		w := s.do(http.MethodPatch, "/api/v1/admin/api-keys/"+strconv.Itoa(int(issued.ID)),
			map[string]interface{}{"is_active": false}, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.do(http.MethodGet, "/api/v1/tg/all", nil, signed)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAdminRoutesRequireSuperuser(t *testing.T) {
	s := newTestServer(t)
	s.createUser("volunteer@muhajir.org", "volunteer-pass", false)
	volunteer := s.login("volunteer@muhajir.org", "volunteer-pass")

	w := s.do(http.MethodGet, "/api/v1/admin/campaigns", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/campaigns", nil, volunteer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/auth/me", nil, volunteer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "volunteer@muhajir.org", decode[models.User](t, w).Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/token", map[string]string{"username": adminEmail, "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
}

func TestCampaignLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/admin/campaigns", map[string]interface{}{
		"title":       "Winter appeal",
		"description": "Blankets for families",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	campaign := decode[models.DonationCampaign](t, w)
	assert.True(t, campaign.IsActive)
	require.Len(t, campaign.UUID, 36)

	w = s.do(http.MethodPost, "/api/v1/admin/wallets", map[string]interface{}{
		"campaign_id": campaign.ID,
		"name":        "main",
		"btc":         "bc1qexample",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/campaigns/"+campaign.UUID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	public := decode[models.DonationCampaign](t, w)
	require.Len(t, public.Wallets, 1)
	assert.Equal(t, "bc1qexample", public.Wallets[0].BTC)

	path := "/api/v1/admin/campaigns/" + strconv.Itoa(int(campaign.ID))

	t.Run("empty update leaves the record", func(t *testing.T) {
		w := s.do(http.MethodPut, path, map[string]interface{}{}, admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Winter appeal", decode[models.DonationCampaign](t, w).Title)
	})

	t.Run("deactivated campaign is hidden", func(t *testing.T) {
		w := s.do(http.MethodPatch, path, map[string]interface{}{"is_active": false}, admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, decode[models.DonationCampaign](t, w).IsActive)

		w = s.do(http.MethodGet, "/api/v1/campaigns/"+campaign.UUID, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete twice", func(t *testing.T) {
		w := s.do(http.MethodDelete, path, nil, admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Campaign deleted successfully", decode[map[string]string](t, w)["message"])

		w = s.do(http.MethodDelete, path, nil, admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListPagination(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/v1/admin/tg/users", map[string]interface{}{
			"id_telegram": 2000 + i,
			"name":        "chat " + strconv.Itoa(i),
		}, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/v1/admin/tg/users?skip=1&limit=1", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[[]models.TgUser](t, w)
	require.Len(t, page, 1)
	assert.Equal(t, "chat 1", page[0].Name)

	w = s.do(http.MethodGet, "/api/v1/admin/tg/users?skip=10", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/admin/tg/users?limit=-1", nil, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackSubmission(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/feedback", map[string]string{
		"name":    "Yusuf",
		"email":   "yusuf@example.org",
		"message": "May Allah reward you",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fb := decode[models.Feedback](t, w)
	assert.False(t, fb.IsRead)

	require.Len(t, s.publisher.sent, 1)
	assert.Equal(t, s.cfg.RabbitMQ.FeedbackQueue, s.publisher.sent[0].queue)
	event, ok := s.publisher.sent[0].msg.(services.FeedbackCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, fb.ID, event.FeedbackID)
	assert.Equal(t, "feedback.created", event.Type)

	w = s.do(http.MethodPost, "/api/v1/feedback", map[string]string{"name": "x", "email": "not-an-email", "message": "m"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, s.publisher.sent, 1)

	admin := s.login(adminEmail, adminPassword)
	w = s.do(http.MethodPost, "/api/v1/admin/feedback", map[string]string{"name": "x"}, admin)
	assert.Equal(t, http.StatusNotFound, w.Code, "admin feedback has no create route")

	w = s.do(http.MethodGet, "/api/v1/admin/feedback/export", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/v1/tg/all", nil, nil)

	w := s.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api_key_verifications_total")
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func (s *testServer) upload(path, filename, contentType string, content []byte, headers map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) createPublication(admin map[string]string, slug string) models.Publication {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/admin/publications", map[string]interface{}{
		"title": "Report " + slug,
		"slug":  slug,
		"text":  "Distribution report",
	}, admin)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Publication](s.t, w)
}

func TestAdminUsers(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
		"email":     "editor@muhajir.org",
		"full_name": "Editor",
		"password":  "first-pass",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "first-pass")
	assert.NotContains(t, w.Body.String(), "hashed_password")
	editor := decode[models.User](t, w)
	assert.True(t, editor.IsActive)
	assert.False(t, editor.IsSuperuser)
	s.login("editor@muhajir.org", "first-pass")

	path := "/api/v1/admin/users/" + strconv.Itoa(int(editor.ID))

	t.Run("password change is hashed", func(t *testing.T) {
		w := s.do(http.MethodPatch, path, map[string]interface{}{"password": "second-pass"}, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Editor", decode[models.User](t, w).FullName)

		s.login("editor@muhajir.org", "second-pass")
		w = s.do(http.MethodPost, "/api/v1/auth/token",
			map[string]string{"username": "editor@muhajir.org", "password": "first-pass"}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
			"email":    "editor@muhajir.org",
			"password": "another-pass",
		}, admin)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/admin/users", map[string]interface{}{
			"email":    "long@muhajir.org",
			"password": strings.Repeat("x", 80),
		}, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

		// 40 two-byte runes pass the length tag but are 80 bytes
		w = s.do(http.MethodPatch, path, map[string]interface{}{"password": strings.Repeat("é", 40)}, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), "bcrypt")

		s.login("editor@muhajir.org", "second-pass")
	})
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	for _, path := range []string{
		"/api/v1/admin/campaigns/abc",
		"/api/v1/admin/campaigns/0",
		"/api/v1/admin/campaigns/-4",
		"/api/v1/admin/campaigns?skip=abc",
		"/api/v1/admin/campaigns?limit=1.5",
		"/api/v1/admin/campaigns?skip=-1",
	} {
		w := s.do(http.MethodGet, path, nil, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := s.do(http.MethodDelete, "/api/v1/admin/publications/images/abc", nil, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/admin/campaigns/77", nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownParentIsRejected(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/admin/wallets", map[string]interface{}{
		"campaign_id": 999,
		"name":        "main",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/admin/social-links", map[string]interface{}{
		"fund_id":  999,
		"platform": "telegram",
		"url":      "https://t.me/muhajir",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestDuplicateSlugIsConflict(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	s.createPublication(admin, "ramadan-2026")

	w := s.do(http.MethodPost, "/api/v1/admin/publications", map[string]interface{}{
		"title": "Again",
		"slug":  "ramadan-2026",
		"text":  "Duplicate",
	}, admin)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "Record already exists", decode[map[string]string](t, w)["error"])
}

func TestPublicationMedia(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)
	pub := s.createPublication(admin, "eid-2026")
	base := "/api/v1/admin/publications/" + strconv.Itoa(int(pub.ID))
	onDisk := func(rel string) string { return filepath.Join(s.cfg.Uploads.Dir, filepath.FromSlash(rel)) }

	w := s.upload(base+"/images", "parcel.png", "image/png", []byte("png bytes"), admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	img := decode[models.PublicationImage](t, w)
	assert.FileExists(t, onDisk(img.Path))

	w = s.do(http.MethodGet, "/uploads/"+img.Path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png bytes", w.Body.String())

	w = s.upload(base+"/videos", "clip.mp4", "video/mp4", []byte("mp4 bytes"), admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	vid := decode[models.PublicationVideo](t, w)

	w = s.do(http.MethodGet, "/api/v1/publications/"+strconv.Itoa(int(pub.ID)), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	public := decode[models.Publication](t, w)
	assert.Len(t, public.Images, 1)
	assert.Len(t, public.Videos, 1)

	t.Run("wrong kind or missing publication", func(t *testing.T) {
		w := s.upload(base+"/images", "clip.mp4", "video/mp4", []byte("mp4"), admin)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

		w = s.upload("/api/v1/admin/publications/999/images", "a.png", "image/png", []byte("png"), admin)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(http.MethodPost, base+"/images", nil, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete image", func(t *testing.T) {
		path := "/api/v1/admin/publications/images/" + strconv.Itoa(int(img.ID))
		w := s.do(http.MethodDelete, path, nil, admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NoFileExists(t, onDisk(img.Path))

		w = s.do(http.MethodDelete, path, nil, admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete publication removes its files", func(t *testing.T) {
		w := s.do(http.MethodDelete, base, nil, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NoFileExists(t, onDisk(vid.Path))
		_, err := os.Stat(filepath.Join(s.cfg.Uploads.Dir, "publications", strconv.Itoa(int(pub.ID))))
		assert.True(t, os.IsNotExist(err))

		w = s.do(http.MethodDelete, "/api/v1/admin/publications/videos/"+strconv.Itoa(int(vid.ID)), nil, admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
