package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 聚合各仓储；Transaction 内拿到的 Store 共享同一个事务
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() UserRepository       { return NewUserRepository(s.db) }
func (s *Store) Blogs() BlogRepository       { return NewBlogRepository(s.db) }
func (s *Store) Comments() CommentRepository { return NewCommentRepository(s.db) }
func (s *Store) Follows() FollowRepository   { return NewFollowRepository(s.db) }
func (s *Store) Reports() ReportRepository   { return NewReportRepository(s.db) }

// Transaction 在一个事务内执行 fn；fn 返回错误则整体回滚
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
