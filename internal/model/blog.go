package model

import "time"

// Blog 博文；同一 owner 每个自然日最多 2 篇
type Blog struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Owner       string    `json:"owner" gorm:"type:varchar(64);not null;index:idx_blog_owner_created"`
	Subject     string    `json:"subject" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;index:idx_blog_owner_created;index:idx_blog_created"`
	Tags        []BlogTag `json:"-" gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE"`
	OwnerUser   *User     `json:"-" gorm:"foreignKey:Owner;references:Username"`
}

func (Blog) TableName() string { return "blogs" }

// TagNames 返回标签字符串
func (b *Blog) TagNames() []string {
	res := make([]string, len(b.Tags))
	for i, t := range b.Tags {
		res[i] = t.Tag
	}
	return res
}

// BlogTag 博文标签，(blog_id, tag) 为复合主键
type BlogTag struct {
	BlogID string `gorm:"primaryKey;type:varchar(36)"`
	Tag    string `gorm:"primaryKey;type:varchar(64);index:idx_blog_tag_tag"`
}

func (BlogTag) TableName() string { return "blog_tags" }

// BlogSummary 搜索结果项
type BlogSummary struct {
	BlogID    string    `json:"blog_id"`
	Subject   string    `json:"subject"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	Date      string    `json:"date"` // 按配置时区的 YYYY-MM-DD
}

// BlogRef 报表中的博文引用
type BlogRef struct {
	BlogID  string `json:"blog_id"`
	Subject string `json:"subject"`
}
