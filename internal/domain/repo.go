package domain

import "context"

// Граница реляционной транзакции. fn выполняется внутри одной
// транзакции: контекст несёт tx, репозитории сами его подхватывают.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	// CreateUser: уникальный конфликт email/nickname -> ErrConflict
	CreateUser(ctx context.Context, email, passHash, nickname string, profileImg BlobRef) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
	UpdateProfile(ctx context.Context, id UserID, p ProfilePatch) (User, error)
	UpdatePassword(ctx context.Context, id UserID, passHash string) error
	// Deactivate: мягкое удаление — строка остаётся, личные поля затираются
	Deactivate(ctx context.Context, id UserID) error
}

type PostsRepo interface {
	CreatePost(ctx context.Context, p *Post) error
	PostByID(ctx context.Context, id PostID) (Post, error)
	PostsList(ctx context.Context) ([]Post, error)
	UpdatePost(ctx context.Context, id PostID, p PostPatch) error
	DeletePost(ctx context.Context, id PostID) error
	IncrementViews(ctx context.Context, id PostID) error
}

type CommentsRepo interface {
	CreateComment(ctx context.Context, c *Comment) error
	CommentByID(ctx context.Context, id CommentID) (Comment, error)
	CommentsByPost(ctx context.Context, postID PostID) ([]Comment, error)
	UpdateComment(ctx context.Context, id CommentID, content string) error
	DeleteComment(ctx context.Context, id CommentID) error
}

type LikesRepo interface {
	// Like: повторный лайк -> ErrConflict
	Like(ctx context.Context, userID UserID, postID PostID) error
	// Unlike: лайка не было -> ErrConflict
	Unlike(ctx context.Context, userID UserID, postID PostID) error
	LikesCount(ctx context.Context, postID PostID) (int, error)
	IsLiked(ctx context.Context, userID UserID, postID PostID) (bool, error)
}
