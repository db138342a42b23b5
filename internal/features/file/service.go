package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go-storefront/internal/common/models"
	"go-storefront/internal/config"
	"go-storefront/internal/forms"

	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MiB

type FileService interface {
	SaveMultipart(ctx context.Context, actor *models.User, header *multipart.FileHeader) (*StoredFile, error)
	UploadHandles(ctx context.Context, actor *models.User, handles []forms.FileHandle) ([]string, error)
	Delete(ctx context.Context, actor *models.User, id string) error
}

type FileServiceImpl struct {
	Repo    FileRepository
	BaseDir string
	BaseURL string
}

func NewFileService(repo FileRepository, cfg *config.Config) FileService {
	return &FileServiceImpl{
		Repo:    repo,
		BaseDir: cfg.FSPath,
		BaseURL: strings.TrimRight(cfg.FSURL, "/"),
	}
}

func (s *FileServiceImpl) SaveMultipart(ctx context.Context, actor *models.User, header *multipart.FileHeader) (*StoredFile, error) {
	if header.Size > maxUploadSize {
		return nil, fmt.Errorf("file '%s' exceeds the %d byte limit", header.Filename, maxUploadSize)
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return s.store(ctx, actor, header.Filename, header.Size, header.Header.Get("Content-Type"), src)
}

// UploadHandles is the form engine's upload delegate. Files are written in
// order; the first failure aborts the batch.
func (s *FileServiceImpl) UploadHandles(ctx context.Context, actor *models.User, handles []forms.FileHandle) ([]string, error) {
	urls := make([]string, 0, len(handles))
	for _, h := range handles {
		if h.Size > maxUploadSize {
			return nil, fmt.Errorf("file '%s' exceeds the %d byte limit", h.Name, maxUploadSize)
		}
		src, err := h.Open()
		if err != nil {
			return nil, err
		}
		stored, err := s.store(ctx, actor, h.Name, h.Size, "", src)
		src.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, stored.URL)
	}
	return urls, nil
}

func (s *FileServiceImpl) store(ctx context.Context, actor *models.User, name string, size int64, mimeType string, src io.Reader) (*StoredFile, error) {
	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return nil, err
	}

	// Random stored name keeps uploads from clobbering each other and strips
	// any path components a client smuggled into the file name.
	storedName := uuid.NewString() + filepath.Ext(filepath.Base(name))
	dst, err := os.Create(filepath.Join(s.BaseDir, storedName))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	stored := &StoredFile{
		FileName:   filepath.Base(name),
		StoredName: storedName,
		URL:        s.BaseURL + "/" + storedName,
		Size:       size,
		MimeType:   mimeType,
	}
	if actor != nil {
		stored.UploadedBy = actor.ID.Hex()
	}

	if err := s.Repo.Insert(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// Delete removes a stored file. Only the uploader or an admin may delete.
func (s *FileServiceImpl) Delete(ctx context.Context, actor *models.User, id string) error {
	stored, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if actor == nil || (!actor.IsAdmin() && stored.UploadedBy != actor.ID.Hex()) {
		return errors.New("only the uploader may delete this file")
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.BaseDir, stored.StoredName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
