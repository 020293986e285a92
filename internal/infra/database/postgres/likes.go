package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

// Повторный лайк ловится первичным ключом (user_id, post_id) -> ErrConflict
func (r *PGRepo) Like(ctx context.Context, userID domain.UserID, postID domain.PostID) error {
	q := r.qb().Insert(r.table("likes")).
		Columns("user_id", "post_id").
		Values(userID, postID)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("Like", sqlStr, args)

	if _, err := r.q(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return mapWriteErr(err)
	}
	return nil
}

func (r *PGRepo) Unlike(ctx context.Context, userID domain.UserID, postID domain.PostID) error {
	q := r.qb().Delete(r.table("likes")).
		Where(sq.Eq{"user_id": userID, "post_id": postID})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("Unlike", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict // лайка не было
	}
	return nil
}

func (r *PGRepo) LikesCount(ctx context.Context, postID domain.PostID) (int, error) {
	q := r.qb().Select("count(*)").
		From(r.table("likes")).
		Where(sq.Eq{"post_id": postID})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("LikesCount", sqlStr, args)

	var n int
	if err := r.q(ctx).QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, mapReadErr(err)
	}
	return n, nil
}

func (r *PGRepo) IsLiked(ctx context.Context, userID domain.UserID, postID domain.PostID) (bool, error) {
	q := r.qb().Select("count(*)").
		From(r.table("likes")).
		Where(sq.Eq{"user_id": userID, "post_id": postID})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("IsLiked", sqlStr, args)

	var n int
	if err := r.q(ctx).QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return false, mapReadErr(err)
	}
	return n > 0, nil
}
