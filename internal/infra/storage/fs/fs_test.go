package fs

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return s
}

func TestSaveAndExists(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	ref, err := s.Save(ctx, domain.BlobUpload{
		Reader:    strings.NewReader("hello"),
		Namespace: domain.NSProfileUploads,
		Name:      "avatar.png",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(ref), "/"+domain.NSProfileUploads+"/"))
	require.True(t, strings.HasSuffix(string(ref), "_avatar.png"))

	ok, err := s.Exists(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)

	// на диске ровно один файл, временных не осталось
	entries, err := os.ReadDir(s.Dir(domain.NSProfileUploads))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(s.Dir(domain.NSProfileUploads), entries[0].Name()))
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestSaveUniqueRefs(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	r1, err := s.Save(ctx, domain.BlobUpload{Reader: strings.NewReader("a"), Namespace: domain.NSPostUploads, Name: "img.jpg"})
	require.NoError(t, err)
	r2, err := s.Save(ctx, domain.BlobUpload{Reader: strings.NewReader("b"), Namespace: domain.NSPostUploads, Name: "img.jpg"})
	require.NoError(t, err)
	require.NotEqual(t, r1, r2)
}

func TestSaveBadNamespace(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Save(context.Background(), domain.BlobUpload{
		Reader:    strings.NewReader("x"),
		Namespace: "somewhere",
		Name:      "f",
	})
	require.ErrorIs(t, err, domain.ErrInvalidRef)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestSaveFailedWriteLeavesNothing(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Save(context.Background(), domain.BlobUpload{
		Reader:    failingReader{},
		Namespace: domain.NSPostUploads,
		Name:      "f.bin",
	})
	require.ErrorIs(t, err, domain.ErrStorage)

	entries, err := os.ReadDir(s.Dir(domain.NSPostUploads))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	ref, err := s.Save(ctx, domain.BlobUpload{Reader: strings.NewReader("x"), Namespace: domain.NSProfileUploads, Name: "a"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, ref))
	// повторное удаление не ошибка
	require.NoError(t, s.Delete(ctx, ref))

	ok, err := s.Exists(ctx, ref)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveRejectsBadRefs(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, ref := range []domain.BlobRef{
		"/etc/passwd",
		"/" + domain.NSProfileUploads + "/../escape",
		"/" + domain.NSProfileUploads + "/",
		"/" + domain.NSProfileUploads + "/a/b",
		"plainname",
		"",
	} {
		err := s.Delete(ctx, ref)
		require.ErrorIs(t, err, domain.ErrInvalidRef, "ref=%q", ref)

		_, err = s.Exists(ctx, ref)
		require.ErrorIs(t, err, domain.ErrInvalidRef, "ref=%q", ref)
	}
}

func TestSanitizeSlashes(t *testing.T) {
	s := newTestStorage(t)
	ref, err := s.Save(context.Background(), domain.BlobUpload{
		Reader:    strings.NewReader("x"),
		Namespace: domain.NSPostUploads,
		Name:      "a/b.png",
	})
	require.NoError(t, err)
	// имя не вводит дополнительных сегментов пути
	require.Equal(t, 2, strings.Count(string(ref), "/"))
}
