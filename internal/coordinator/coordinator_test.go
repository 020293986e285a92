package coordinator

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

// fakeBlobs считает сохранения и помнит удалённые ссылки
type fakeBlobs struct {
	saves   int
	saveErr error
	delErr  error
	deleted []domain.BlobRef
}

func (f *fakeBlobs) Save(_ context.Context, up domain.BlobUpload) (domain.BlobRef, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saves++
	return domain.BlobRef("/" + up.Namespace + "/blob-" + strconv.Itoa(f.saves)), nil
}

func (f *fakeBlobs) Delete(_ context.Context, ref domain.BlobRef) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeBlobs) Exists(context.Context, domain.BlobRef) (bool, error) { return false, nil }

func newTestCoordinator(blobs *fakeBlobs) *Coordinator {
	return New(blobs, log.New(io.Discard, "", 0))
}

func upload() *domain.BlobUpload {
	return &domain.BlobUpload{
		Reader:    strings.NewReader("content"),
		Namespace: domain.NSPostUploads,
		Name:      "img.png",
	}
}

func TestRunCreateSuccess(t *testing.T) {
	blobs := &fakeBlobs{}
	c := newTestCoordinator(blobs)

	var seen domain.BlobRef
	ref, err := c.Run(context.Background(), Intent{
		NewBlob: upload(),
		Mutate: func(_ context.Context, newRef domain.BlobRef) error {
			seen = newRef
			return nil
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, ref)
	require.Equal(t, ref, seen) // мутация видит уже записанный файл
	require.Empty(t, blobs.deleted)
}

func TestRunCreateMutateFails(t *testing.T) {
	blobs := &fakeBlobs{}
	c := newTestCoordinator(blobs)

	boom := errors.New("unique violation")
	_, err := c.Run(context.Background(), Intent{
		NewBlob: upload(),
		Mutate:  func(context.Context, domain.BlobRef) error { return boom },
	})
	require.ErrorIs(t, err, boom)
	// компенсация: новый файл удалён
	require.Len(t, blobs.deleted, 1)
	require.Equal(t, domain.BlobRef("/postuploads/blob-1"), blobs.deleted[0])
}

func TestRunReplaceSuccessDeletesOld(t *testing.T) {
	blobs := &fakeBlobs{}
	c := newTestCoordinator(blobs)

	old := domain.BlobRef("/postuploads/old")
	ref, err := c.Run(context.Background(), Intent{
		OldRef:  old,
		NewBlob: upload(),
		Mutate:  func(context.Context, domain.BlobRef) error { return nil },
	})
	require.NoError(t, err)
	require.NotEqual(t, old, ref)
	require.Equal(t, []domain.BlobRef{old}, blobs.deleted)
}

func TestRunReplaceMutateFailsKeepsOld(t *testing.T) {
	blobs := &fakeBlobs{}
	c := newTestCoordinator(blobs)

	old := domain.BlobRef("/postuploads/old")
	boom := errors.New("db down")
	_, err := c.Run(context.Background(), Intent{
		OldRef:  old,
		NewBlob: upload(),
		Mutate:  func(context.Context, domain.BlobRef) error { return boom },
	})
	require.ErrorIs(t, err, boom)
	// удалён только новый файл, старый не тронут
	require.Equal(t, []domain.BlobRef{"/postuploads/blob-1"}, blobs.deleted)
}

func TestRunMutateOnlyNoBlobTouched(t *testing.T) {
	blobs := &fakeBlobs{}
	c := newTestCoordinator(blobs)

	ref, err := c.Run(context.Background(), Intent{
		OldRef: "/postuploads/old",
		Mutate: func(_ context.Context, newRef domain.BlobRef) error {
			require.Empty(t, newRef)
			return nil
		},
	})
	require.NoError(t, err)
	require.Empty(t, ref)
	// без нового файла старый остаётся (удаление поста идёт отдельным путём)
	require.Empty(t, blobs.deleted)
	require.Zero(t, blobs.saves)
}

func TestRunSaveFails(t *testing.T) {
	blobs := &fakeBlobs{saveErr: errors.New("disk full")}
	c := newTestCoordinator(blobs)

	called := false
	_, err := c.Run(context.Background(), Intent{
		NewBlob: upload(),
		Mutate: func(context.Context, domain.BlobRef) error {
			called = true
			return nil
		},
	})
	require.Error(t, err)
	require.False(t, called) // мутация не стартует без файла
}

func TestRunCompensationFailureDoesNotMask(t *testing.T) {
	blobs := &fakeBlobs{delErr: errors.New("delete failed")}
	c := newTestCoordinator(blobs)

	boom := errors.New("commit failed")
	_, err := c.Run(context.Background(), Intent{
		NewBlob: upload(),
		Mutate:  func(context.Context, domain.BlobRef) error { return boom },
	})
	require.ErrorIs(t, err, boom)
}

func TestRunSurvivesCancelledRequest(t *testing.T) {
	blobs := &fakeBlobs{}
	c := newTestCoordinator(blobs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ref, err := c.Run(ctx, Intent{
		NewBlob: upload(),
		Mutate: func(ctx context.Context, _ domain.BlobRef) error {
			// начатый протокол доезжает до конца даже после отмены запроса
			return ctx.Err()
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, ref)
}
