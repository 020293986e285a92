package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

// Локальное файловое хранилище. Ключ = "/<namespace>/<uuid>_<имя>",
// он же URL для статики. Общей транзакции с БД нет — согласованность
// обеспечивает coordinator.

type Storage struct {
	root   string // каталог, внутри которого лежат namespace-папки
	logger *log.Logger
}

var _ domain.BlobStore = (*Storage)(nil)

func New(root string, logger *log.Logger) (*Storage, error) {
	for _, ns := range []string{domain.NSProfileUploads, domain.NSPostUploads} {
		if err := os.MkdirAll(filepath.Join(root, ns), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", ns, err)
		}
	}
	return &Storage{root: root, logger: logger}, nil
}

// Dir возвращает абсолютный путь namespace-папки (для статики)
func (s *Storage) Dir(namespace string) string {
	return filepath.Join(s.root, namespace)
}

// Save пишет контент во временный файл и атомарно переименовывает.
// Частично записанный файл не может оказаться под итоговым именем.
func (s *Storage) Save(ctx context.Context, up domain.BlobUpload) (domain.BlobRef, error) {
	if !allowedNamespace(up.Namespace) {
		return "", fmt.Errorf("%w: namespace %q", domain.ErrInvalidRef, up.Namespace)
	}

	name := uuid.NewString() + "_" + sanitize(up.Name)
	dir := filepath.Join(s.root, up.Namespace)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp: %v", domain.ErrStorage, err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, up.Reader); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: write: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: close: %v", domain.ErrStorage, err)
	}

	finalPath := filepath.Join(dir, name)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: rename: %v", domain.ErrStorage, err)
	}

	ref := "/" + up.Namespace + "/" + name
	s.logger.Printf("saved %s (%s)", ref, up.Name)
	return ref, nil
}

// Delete идемпотентен: отсутствующий файл — не ошибка.
func (s *Storage) Delete(ctx context.Context, ref domain.BlobRef) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Printf("delete %s: already gone", ref)
			return nil
		}
		return fmt.Errorf("%w: remove: %v", domain.ErrStorage, err)
	}
	s.logger.Printf("deleted %s", ref)
	return nil
}

func (s *Storage) Exists(ctx context.Context, ref domain.BlobRef) (bool, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat: %v", domain.ErrStorage, err)
	}
	return true, nil
}

// resolve проверяет ссылку и превращает её в путь на диске.
// Ссылка приходит из БД, т.е. потенциально из незатёртых старых данных —
// всё вне "/<разрешённый ns>/<имя без разделителей>" отклоняем.
func (s *Storage) resolve(ref domain.BlobRef) (string, error) {
	ns, name, ok := strings.Cut(strings.TrimPrefix(ref, "/"), "/")
	if !ok || !allowedNamespace(ns) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRef, ref)
	}
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRef, ref)
	}
	return filepath.Join(s.root, ns, name), nil
}

func allowedNamespace(ns string) bool {
	return ns == domain.NSProfileUploads || ns == domain.NSPostUploads
}

func sanitize(name string) string {
	u := url.PathEscape(name)
	return strings.ReplaceAll(u, "%2F", "_")
}
