package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

func (r *PGRepo) commentSelect() sq.SelectBuilder {
	return r.qb().Select(
		"c.id", "c.post_id", "c.author_id", "c.content", "c.created_at", "c.updated_at",
		"u.id", "COALESCE(u.nickname, '')", "COALESCE(u.profileimg_url, '')", "u.is_active",
	).
		From(r.table("comments") + " c").
		Join(r.table("users") + " u ON u.id = c.author_id")
}

func scanComment(row interface{ Scan(dest ...any) error }) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.UserID, &c.Author.Nickname, &c.Author.ProfileImgURL, &c.Author.IsActive,
	)
	return c, err
}

func (r *PGRepo) CreateComment(ctx context.Context, c *domain.Comment) error {
	q := r.qb().Insert(r.table("comments")).
		Columns("post_id", "author_id", "content").
		Values(c.PostID, c.AuthorID, c.Content).
		Suffix("RETURNING id, created_at, updated_at")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateComment", sqlStr, args)

	row := r.q(ctx).QueryRow(ctx, sqlStr, args...)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *PGRepo) CommentByID(ctx context.Context, id domain.CommentID) (domain.Comment, error) {
	q := r.commentSelect().Where(sq.Eq{"c.id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CommentByID", sqlStr, args)

	c, err := scanComment(r.q(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.Comment{}, mapReadErr(err)
	}
	return c, nil
}

func (r *PGRepo) CommentsByPost(ctx context.Context, postID domain.PostID) ([]domain.Comment, error) {
	q := r.commentSelect().
		Where(sq.Eq{"c.post_id": postID}).
		OrderBy("c.created_at DESC", "c.id DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CommentsByPost", sqlStr, args)

	rows, err := r.q(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapReadErr(err)
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, mapReadErr(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadErr(err)
	}
	return out, nil
}

func (r *PGRepo) UpdateComment(ctx context.Context, id domain.CommentID, content string) error {
	q := r.qb().Update(r.table("comments")).
		Set("content", content).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateComment", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteComment(ctx context.Context, id domain.CommentID) error {
	q := r.qb().Delete(r.table("comments")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteComment", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
