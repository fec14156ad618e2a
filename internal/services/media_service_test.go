package services_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhajir-foundation/muhajir-api/internal/config"
	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
	"github.com/muhajir-foundation/muhajir-api/internal/services"
	"github.com/muhajir-foundation/muhajir-api/internal/testutil"
)

// fileHeader builds the header gin hands to handlers for a "file" form field.
func fileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func newMediaService(t *testing.T, maxSize int64) (*services.MediaService, *models.Publication, string) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := config.Default()
	cfg.Uploads.Dir = t.TempDir()
	cfg.Uploads.MaxSizeBytes = maxSize

	pub, err := repository.NewPublicationRepository(db).Create(context.Background(), &models.Publication{
		Title: "Eid distribution",
		Slug:  "eid-distribution",
		Text:  "Food parcels",
	})
	require.NoError(t, err)
	return services.NewMediaService(db, cfg), pub, cfg.Uploads.Dir
}

func TestMediaService_UploadAndDeleteImage(t *testing.T) {
	ctx := context.Background()
	svc, pub, dir := newMediaService(t, 1<<20)

	img, err := svc.UploadImage(ctx, pub.ID, fileHeader(t, "Parcel.JPG", "image/jpeg", []byte("jpeg bytes")))
	require.NoError(t, err)
	assert.Equal(t, pub.ID, img.PublicationID)
	assert.Regexp(t, `^publications/\d+/images/[0-9a-f-]{36}\.jpg$`, img.Path)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.Path)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(stored))

	deleted, err := svc.DeleteImage(ctx, img.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(img.Path)))
	assert.True(t, os.IsNotExist(err))

	deleted, err = svc.DeleteImage(ctx, img.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMediaService_UploadVideo(t *testing.T) {
	svc, pub, _ := newMediaService(t, 1<<20)

	vid, err := svc.UploadVideo(context.Background(), pub.ID, fileHeader(t, "clip.mp4", "video/mp4", []byte("mp4")))
	require.NoError(t, err)
	assert.Contains(t, vid.Path, "/videos/")
}

func TestMediaService_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newMediaService(t, 8)

	_, err := svc.UploadImage(ctx, pub.ID+100, fileHeader(t, "a.png", "image/png", []byte("png")))
	assert.ErrorIs(t, err, services.ErrPublicationNotFound)

	_, err = svc.UploadImage(ctx, pub.ID, fileHeader(t, "big.png", "image/png", []byte("more than eight bytes")))
	assert.ErrorIs(t, err, services.ErrFileTooLarge)

	_, err = svc.UploadImage(ctx, pub.ID, fileHeader(t, "clip.mp4", "video/mp4", []byte("mp4")))
	assert.ErrorIs(t, err, services.ErrUnsupportedMedia)
}

func TestMediaService_DeletePublicationRemovesFiles(t *testing.T) {
	ctx := context.Background()
	svc, pub, dir := newMediaService(t, 1<<20)

	img, err := svc.UploadImage(ctx, pub.ID, fileHeader(t, "a.png", "image/png", []byte("png")))
	require.NoError(t, err)
	vid, err := svc.UploadVideo(ctx, pub.ID, fileHeader(t, "b.mp4", "video/mp4", []byte("mp4")))
	require.NoError(t, err)

	deleted, err := svc.DeletePublication(ctx, pub.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	for _, rel := range []string{img.Path, vid.Path} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.True(t, os.IsNotExist(err), "%s should be gone", rel)
	}
	_, err = os.Stat(filepath.Join(dir, "publications"))
	require.NoError(t, err, "other publications keep their parent directory")

	deleted, err = svc.DeletePublication(ctx, pub.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
