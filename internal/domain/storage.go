package domain

import (
	"context"
	"io"
)

// Разрешённые namespace файлового хранилища. Пути вида
// /<namespace>/<имя> отдаются статикой как есть.
const (
	NSProfileUploads = "profileuploads"
	NSPostUploads    = "postuploads"
)

// BlobRef — стабильная ссылка на сохранённый файл ("/postuploads/<uuid>_name.png").
// Хранится в строке поста/профиля и одновременно резолвится как URL.
type BlobRef = string

// Содержимое нового файла для сохранения
type BlobUpload struct {
	Reader    io.Reader
	Namespace string
	Name      string // исходное имя файла (hint, попадает в суффикс ключа)
}

// Хранилище бинарного контента (локальный диск)
type BlobStore interface {
	// Save пишет контент под свежим именем внутри namespace.
	// При ошибке не оставляет частично записанный файл.
	Save(ctx context.Context, up BlobUpload) (BlobRef, error)
	// Delete идемпотентен: отсутствующий файл — не ошибка.
	// Ссылки вне разрешённых namespace — ErrInvalidRef.
	Delete(ctx context.Context, ref BlobRef) error
	// Exists — служебная проверка (тесты, health)
	Exists(ctx context.Context, ref BlobRef) (bool, error)
}
