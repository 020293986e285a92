package domain

import "time"

// Базовые идентификаторы (автоинкремент в БД)
type UserID = int64
type PostID = int64
type CommentID = int64

// Пользователь
type User struct {
	ID            UserID    `json:"userId"`
	Email         string    `json:"email"`
	PassHash      string    `json:"-"` // никогда не отдаём наружу
	Nickname      string    `json:"nickname"`
	ProfileImgURL string    `json:"profileImgUrl,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Пост (картинка опциональна — PostImgURL пустой, если её нет)
type Post struct {
	ID         PostID    `json:"postId"`
	AuthorID   UserID    `json:"-"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	PostImgURL string    `json:"postImgUrl,omitempty"`
	Views      int       `json:"views"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Денормализованные поля для выдачи списков/карточки
	Author        PostAuthor `json:"user"`
	LikesCount    int        `json:"likesCount"`
	CommentsCount int        `json:"commentsCount"`
}

type PostAuthor struct {
	UserID        UserID `json:"userId"`
	Nickname      string `json:"nickname"`
	ProfileImgURL string `json:"profileImgUrl,omitempty"`
	IsActive      bool   `json:"isActive"`
}

// Комментарий к посту
type Comment struct {
	ID        CommentID  `json:"commentId"`
	PostID    PostID     `json:"-"`
	AuthorID  UserID     `json:"-"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Author    PostAuthor `json:"user"`
}
