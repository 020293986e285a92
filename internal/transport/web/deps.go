package web

import "github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"

type Repos struct {
	Users    domain.UsersRepo
	Posts    domain.PostsRepo
	Comments domain.CommentsRepo
	Likes    domain.LikesRepo
	Tx       domain.TxRunner
}

type AuthDeps struct {
	Hasher domain.PasswordHasher
	Tokens domain.TokenManager
}
