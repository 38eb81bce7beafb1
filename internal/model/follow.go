package model

import (
	"time"
)

// Follow 关注关系（follower 关注 followee）
type Follow struct {
	// 复合主键，避免重复关注
	Follower     string `gorm:"primaryKey;type:varchar(64)"`
	Followee     string `gorm:"primaryKey;type:varchar(64);index:idx_follow_followee"`
	CreatedAt    time.Time
	FollowerUser *User `gorm:"foreignKey:Follower;references:Username"`
	FolloweeUser *User `gorm:"foreignKey:Followee;references:Username"`
}

func (Follow) TableName() string { return "follows" }
