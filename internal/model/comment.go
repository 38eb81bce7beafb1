package model

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
)

// Comment 评论；(blog_id, reviewer) 唯一，reviewer 不能是博文作者
type Comment struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BlogID       string    `json:"blog_id" gorm:"type:varchar(36);not null;uniqueIndex:ux_comment_blog_reviewer"`
	Reviewer     string    `json:"reviewer" gorm:"type:varchar(64);not null;uniqueIndex:ux_comment_blog_reviewer;index:idx_comment_reviewer_created"`
	Sentiment    string    `json:"sentiment" gorm:"type:varchar(8);not null"`
	Description  string    `json:"description" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;index:idx_comment_reviewer_created"`
	Blog         *Blog     `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	ReviewerUser *User     `json:"-" gorm:"foreignKey:Reviewer;references:Username"`
}

func (Comment) TableName() string { return "comments" }

// CommentView 评论列表项，带评论人显示名
type CommentView struct {
	ID           string    `json:"id"`
	Reviewer     string    `json:"reviewer"`
	ReviewerName string    `json:"reviewer_name"`
	Sentiment    string    `json:"sentiment"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}
