package model

import "time"

// User 用户；username 为主键，email / phone 全局唯一。注册后不可修改
type User struct {
	Username     string    `json:"username" gorm:"primaryKey;type:varchar(64)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName     string    `json:"last_name" gorm:"type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Phone        string    `json:"phone" gorm:"type:varchar(32);not null;uniqueIndex:ux_users_phone"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// DisplayName 名 + 姓
func (u User) DisplayName() string { return displayName(u.FirstName, u.LastName) }

// Session 登录后的身份，由调用方显式传入各写操作
type Session struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s Session) DisplayName() string { return displayName(s.FirstName, s.LastName) }

// UserSummary 关注/粉丝列表项
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func displayName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
