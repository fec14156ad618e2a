package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/muhajir-foundation/muhajir-api/internal/config"
	"github.com/muhajir-foundation/muhajir-api/internal/database/repository"
	"github.com/muhajir-foundation/muhajir-api/internal/models"
)

var (
	ErrPublicationNotFound = errors.New("publication not found")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
)

// MediaKind is the sub-directory an upload is stored under.
type MediaKind string

const (
	MediaImages MediaKind = "images"
	MediaVideos MediaKind = "videos"
)

func (k MediaKind) contentPrefix() string {
	if k == MediaVideos {
		return "video/"
	}
	return "image/"
}

// MediaService stores publication images and videos on local disk. Rows keep
// the path relative to the upload directory.
type MediaService struct {
	publications *repository.PublicationRepository
	media        *repository.MediaRepository
	uploadDir    string
	maxSize      int64
}

func NewMediaService(db *gorm.DB, cfg *config.Config) *MediaService {
	if err := os.MkdirAll(cfg.Uploads.Dir, 0755); err != nil {
		logrus.Warnf("Failed to create upload directory %s: %v", cfg.Uploads.Dir, err)
	}
	return &MediaService{
		publications: repository.NewPublicationRepository(db),
		media:        repository.NewMediaRepository(db),
		uploadDir:    cfg.Uploads.Dir,
		maxSize:      cfg.Uploads.MaxSizeBytes,
	}
}

// UploadDir is the root served under /uploads
func (s *MediaService) UploadDir() string {
	return s.uploadDir
}

// UploadImage saves an image and attaches it to the publication
func (s *MediaService) UploadImage(ctx context.Context, publicationID uint, fh *multipart.FileHeader) (*models.PublicationImage, error) {
	rel, err := s.save(ctx, publicationID, MediaImages, fh)
	if err != nil {
		return nil, err
	}
	img, err := s.media.Images.Create(ctx, &models.PublicationImage{PublicationID: publicationID, Path: rel})
	if err != nil {
		s.removeFile(rel)
		return nil, err
	}
	return img, nil
}

// UploadVideo saves a video and attaches it to the publication
func (s *MediaService) UploadVideo(ctx context.Context, publicationID uint, fh *multipart.FileHeader) (*models.PublicationVideo, error) {
	rel, err := s.save(ctx, publicationID, MediaVideos, fh)
	if err != nil {
		return nil, err
	}
	vid, err := s.media.Videos.Create(ctx, &models.PublicationVideo{PublicationID: publicationID, Path: rel})
	if err != nil {
		s.removeFile(rel)
		return nil, err
	}
	return vid, nil
}

// DeleteImage removes the row and its file. It reports false when the
// image does not exist.
func (s *MediaService) DeleteImage(ctx context.Context, id uint) (bool, error) {
	img, err := s.media.Images.Get(ctx, id)
	if err != nil || img == nil {
		return false, err
	}
	s.removeFile(img.Path)
	return s.media.Images.Remove(ctx, id)
}

// DeleteVideo removes the row and its file. It reports false when the
// video does not exist.
func (s *MediaService) DeleteVideo(ctx context.Context, id uint) (bool, error) {
	vid, err := s.media.Videos.Get(ctx, id)
	if err != nil || vid == nil {
		return false, err
	}
	s.removeFile(vid.Path)
	return s.media.Videos.Remove(ctx, id)
}

// DeletePublication removes the publication, its media rows through the
// foreign key cascade, and the directory holding its uploaded files. It
// reports false when the publication does not exist.
func (s *MediaService) DeletePublication(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.publications.Remove(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	dir := filepath.Join(s.uploadDir, s.publicationDir(id))
	if err := os.RemoveAll(dir); err != nil {
		logrus.Warnf("Failed to remove %s: %v", dir, err)
	}
	return true, nil
}

func (s *MediaService) publicationDir(id uint) string {
	return filepath.Join("publications", strconv.FormatUint(uint64(id), 10))
}

func (s *MediaService) save(ctx context.Context, publicationID uint, kind MediaKind, fh *multipart.FileHeader) (string, error) {
	pub, err := s.publications.Get(ctx, publicationID)
	if err != nil {
		return "", err
	}
	if pub == nil {
		return "", ErrPublicationNotFound
	}
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, fh.Size)
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" &&
		!strings.HasPrefix(ct, kind.contentPrefix()) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, ct)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// stored names are generated so uploads never overwrite each other
	rel := filepath.Join(s.publicationDir(publicationID), string(kind),
		uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	dstPath := filepath.Join(s.uploadDir, rel)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	logrus.Infof("Stored %s for publication %d: %s (%d bytes)", kind, publicationID, rel, size)
	return filepath.ToSlash(rel), nil
}

func (s *MediaService) removeFile(rel string) {
	path := filepath.Join(s.uploadDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("Failed to remove %s: %v", path, err)
	}
}
