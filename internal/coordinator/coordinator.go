package coordinator

import (
	"context"
	"log"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

// Coordinator упорядочивает запись файла и реляционный коммит,
// у которых нет общей транзакции. Инвариант: коммит никогда не
// ссылается на незаписанный файл, а записанный файл не остаётся
// без строки, если коммит не прошёл.

type Coordinator struct {
	blobs  domain.BlobStore
	logger *log.Logger
}

func New(blobs domain.BlobStore, logger *log.Logger) *Coordinator {
	return &Coordinator{blobs: blobs, logger: logger}
}

// Intent — план одной скоординированной операции.
type Intent struct {
	// OldRef: прежняя ссылка при замене (удаляется только после коммита)
	OldRef domain.BlobRef
	// NewBlob: контент нового файла; nil — мутация без файла
	NewBlob *domain.BlobUpload
	// Mutate выполняет реляционную мутацию внутри транзакции;
	// newRef — ссылка на уже записанный файл ("" если файла нет)
	Mutate func(ctx context.Context, newRef domain.BlobRef) error
}

// Run выполняет протокол строго последовательно:
// 1) записать новый файл; 2) закоммитить мутацию строки;
// 3а) при успехе — best-effort удалить старый файл;
// 3б) при провале — удалить новый файл и вернуть исходную ошибку.
// Отмена запроса не прерывает уже начатые шаги: частичное применение
// запрещено, поэтому работаем на контексте без отмены.
func (c *Coordinator) Run(ctx context.Context, in Intent) (domain.BlobRef, error) {
	ctx = context.WithoutCancel(ctx)

	var newRef domain.BlobRef
	if in.NewBlob != nil {
		ref, err := c.blobs.Save(ctx, *in.NewBlob)
		if err != nil {
			return "", err
		}
		newRef = ref
	}

	if err := in.Mutate(ctx, newRef); err != nil {
		// компенсация: файл не должен пережить несостоявшуюся строку
		if newRef != "" {
			if derr := c.blobs.Delete(ctx, newRef); derr != nil {
				// не маскируем исходную ошибку
				c.logger.Printf("compensation delete %s failed: %v", newRef, derr)
			}
		}
		return "", err
	}

	// новый стейт закоммичен — старый файл больше никем не упоминается
	if in.OldRef != "" && in.NewBlob != nil && in.OldRef != newRef {
		if err := c.blobs.Delete(ctx, in.OldRef); err != nil {
			c.logger.Printf("stale blob delete %s failed: %v", in.OldRef, err)
		}
	}
	return newRef, nil
}
