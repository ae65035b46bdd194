package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/storage"
)

// Extensions accepted for employee documents and expense receipts.
var documentExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

var imageExts = []string{".jpg", ".jpeg", ".png"}

type FileService interface {
	// UploadEmployeeDocument stores a document under the employee's folder and
	// returns the storage path.
	UploadEmployeeDocument(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadEmployeePicture stores a profile picture and returns its public URL.
	UploadEmployeePicture(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadExpenseReceipt stores a receipt and returns the storage path.
	UploadExpenseReceipt(ctx context.Context, expenseID string, file io.Reader, filename string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

func validateExt(filename string, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", fmt.Errorf("invalid file type %q: allowed %s", ext, strings.Join(allowed, ", "))
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// UploadEmployeeDocument implements FileService.
func (s *fileServiceImpl) UploadEmployeeDocument(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, documentExts)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join("documents", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	return uploadedPath, nil
}

// UploadEmployeePicture implements FileService.
func (s *fileServiceImpl) UploadEmployeePicture(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, imageExts)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", employeeID, uuid.New().String(), ext)
	path := filepath.Join("pictures", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload picture: %w", err)
	}

	return s.storage.GetURL(ctx, uploadedPath, 0)
}

// UploadExpenseReceipt implements FileService.
func (s *fileServiceImpl) UploadExpenseReceipt(ctx context.Context, expenseID string, file io.Reader, filename string) (string, error) {
	ext, err := validateExt(filename, documentExts)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join("receipts", expenseID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}
	return uploadedPath, nil
}

// Download implements FileService.
func (s *fileServiceImpl) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// DeleteFile implements FileService.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL implements FileService.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
