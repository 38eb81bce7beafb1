package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// postgres unique_violation
const pgUniqueViolation = "23505"

// postgres 约束名 -> 列
var constraintColumns = map[string]string{
	"users_pkey":               "username",
	"ux_users_email":           "email",
	"ux_users_phone":           "phone",
	"ux_comment_blog_reviewer": "blog_id,reviewer",
	"follows_pkey":             "follower,followee",
	"blog_tags_pkey":           "blog_id,tag",
}

// UniqueViolation 唯一约束/主键冲突，Column 为冲突列（多列以逗号分隔，未知时为空）
type UniqueViolation struct {
	Table      string
	Column     string
	Constraint string
	Err        error
}

func (e *UniqueViolation) Error() string { return e.Err.Error() }
func (e *UniqueViolation) Unwrap() error { return e.Err }

// AsUniqueViolation 从驱动的结构化错误中识别唯一约束冲突
func AsUniqueViolation(err error) (*UniqueViolation, bool) {
	if err == nil {
		return nil, false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return nil, false
		}
		return &UniqueViolation{
			Table:      pgErr.TableName,
			Column:     constraintColumns[pgErr.ConstraintName],
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}, true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode != sqlite3.ErrConstraintUnique && liteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
			return nil, false
		}
		table, column := sqliteConstraintColumns(liteErr.Error())
		return &UniqueViolation{Table: table, Column: column, Err: err}, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &UniqueViolation{Err: err}, true
	}
	return nil, false
}

// sqlite 报文格式："UNIQUE constraint failed: users.email" 或
// "UNIQUE constraint failed: comments.blog_id, comments.reviewer"
func sqliteConstraintColumns(msg string) (table, column string) {
	_, list, ok := strings.Cut(msg, "constraint failed: ")
	if !ok {
		return "", ""
	}
	var cols []string
	for _, part := range strings.Split(list, ",") {
		t, c, ok := strings.Cut(strings.TrimSpace(part), ".")
		if !ok {
			continue
		}
		table = t
		cols = append(cols, c)
	}
	return table, strings.Join(cols, ",")
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
