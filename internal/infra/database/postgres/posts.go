package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

func (r *PGRepo) postSelect() sq.SelectBuilder {
	return r.qb().Select(
		"p.id", "p.author_id", "p.title", "p.content", "COALESCE(p.post_img, '')",
		"p.views", "p.created_at", "p.updated_at",
		"u.id", "COALESCE(u.nickname, '')", "COALESCE(u.profileimg_url, '')", "u.is_active",
		fmt.Sprintf("(SELECT count(*) FROM %s l WHERE l.post_id = p.id)", r.table("likes")),
		fmt.Sprintf("(SELECT count(*) FROM %s c WHERE c.post_id = p.id)", r.table("comments")),
	).
		From(r.table("posts") + " p").
		Join(r.table("users") + " u ON u.id = p.author_id")
}

func scanPost(row interface{ Scan(dest ...any) error }) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.PostImgURL,
		&p.Views, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.UserID, &p.Author.Nickname, &p.Author.ProfileImgURL, &p.Author.IsActive,
		&p.LikesCount, &p.CommentsCount,
	)
	return p, err
}

func (r *PGRepo) CreatePost(ctx context.Context, p *domain.Post) error {
	q := r.qb().Insert(r.table("posts")).
		Columns("author_id", "title", "content", "post_img").
		Values(p.AuthorID, p.Title, p.Content, nullIfEmpty(p.PostImgURL)).
		Suffix("RETURNING id, views, created_at, updated_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreatePost", sqlStr, args)

	start := time.Now()
	row := r.q(ctx).QueryRow(ctx, sqlStr, args...)
	if err := row.Scan(&p.ID, &p.Views, &p.CreatedAt, &p.UpdatedAt); err != nil {
		r.logger.Printf("CreatePost error after %s: %v", time.Since(start), err)
		return mapWriteErr(err)
	}
	r.logger.Printf("CreatePost ok in %s id=%d", time.Since(start), p.ID)
	return nil
}

func (r *PGRepo) PostByID(ctx context.Context, id domain.PostID) (domain.Post, error) {
	q := r.postSelect().Where(sq.Eq{"p.id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("PostByID", sqlStr, args)

	p, err := scanPost(r.q(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Post{}, mapReadErr(err)
	}
	return p, nil
}

func (r *PGRepo) PostsList(ctx context.Context) ([]domain.Post, error) {
	q := r.postSelect().OrderBy("p.created_at DESC", "p.id DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("PostsList", sqlStr, args)

	rows, err := r.q(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapReadErr(err)
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, mapReadErr(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadErr(err)
	}
	return out, nil
}

// UpdatePost обновляет только присланные поля патча
func (r *PGRepo) UpdatePost(ctx context.Context, id domain.PostID, p domain.PostPatch) error {
	q := r.qb().Update(r.table("posts")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})
	if p.Title != nil {
		q = q.Set("title", *p.Title)
	}
	if p.Content != nil {
		q = q.Set("content", *p.Content)
	}
	if p.ImageRef != nil {
		q = q.Set("post_img", *p.ImageRef)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdatePost", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeletePost(ctx context.Context, id domain.PostID) error {
	q := r.qb().Delete(r.table("posts")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeletePost", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepo) IncrementViews(ctx context.Context, id domain.PostID) error {
	q := r.qb().Update(r.table("posts")).
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("IncrementViews", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
