package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/100-hours-a-week/2-naheun-lee-community-be/internal/domain"
)

const userCols = "id, email, pass_hash, COALESCE(nickname, ''), COALESCE(profileimg_url, ''), is_active, created_at, updated_at"

func scanUser(row interface{ Scan(dest ...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.Nickname, &u.ProfileImgURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PGRepo) CreateUser(ctx context.Context, email, passHash, nickname string, profileImg domain.BlobRef) (domain.User, error) {
	q := r.qb().Insert(r.table("users")).
		Columns("email", "pass_hash", "nickname", "profileimg_url").
		Values(email, passHash, nickname, profileImg).
		Suffix("RETURNING " + userCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateUser", sqlStr, args)

	start := time.Now()
	u, err := scanUser(r.q(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateUser error after %s: %v", time.Since(start), err)
		return domain.User{}, mapWriteErr(err)
	}
	r.logger.Printf("CreateUser ok in %s id=%d email=%s", time.Since(start), u.ID, u.Email)
	return u, nil
}

func (r *PGRepo) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	q := r.qb().Select(userCols).
		From(r.table("users")).
		Where(sq.Eq{"email": email, "is_active": true})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByEmail", sqlStr, args)

	u, err := scanUser(r.q(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.User{}, mapReadErr(err)
	}
	return u, nil
}

func (r *PGRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	q := r.qb().Select(userCols).
		From(r.table("users")).
		Where(sq.Eq{"id": id, "is_active": true})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UserByID", sqlStr, args)

	u, err := scanUser(r.q(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.User{}, mapReadErr(err)
	}
	return u, nil
}

// UpdateProfile обновляет только присланные поля (nil — не трогаем)
func (r *PGRepo) UpdateProfile(ctx context.Context, id domain.UserID, p domain.ProfilePatch) (domain.User, error) {
	q := r.qb().Update(r.table("users")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "is_active": true}).
		Suffix("RETURNING " + userCols)
	if p.Nickname != nil {
		q = q.Set("nickname", *p.Nickname)
	}
	if p.ImageRef != nil {
		q = q.Set("profileimg_url", *p.ImageRef)
	}

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateProfile", sqlStr, args)

	u, err := scanUser(r.q(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return domain.User{}, mapWriteErr(err)
	}
	return u, nil
}

func (r *PGRepo) UpdatePassword(ctx context.Context, id domain.UserID, passHash string) error {
	q := r.qb().Update(r.table("users")).
		Set("pass_hash", passHash).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "is_active": true})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdatePassword", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate — мягкое удаление: строка остаётся ради целостности
// постов/комментариев, личные поля затираются.
func (r *PGRepo) Deactivate(ctx context.Context, id domain.UserID) error {
	q := r.qb().Update(r.table("users")).
		Set("is_active", false).
		Set("email", sq.Expr("'deleted_' || id || '@deleted.com'")).
		Set("nickname", nil).
		Set("profileimg_url", nil).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "is_active": true})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("Deactivate", sqlStr, args)

	tag, err := r.q(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
