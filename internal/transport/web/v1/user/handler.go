package user

import (
	"log"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/coordinator"
	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

type Handler struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
	Tokens domain.TokenManager
	Tx     domain.TxRunner
	Coord  *coordinator.Coordinator
	Blobs  domain.BlobStore // best-effort удаление картинки при withdraw
}
