// Package model 定义数据库表结构
package model

import (
	"gorm.io/gorm"

	"github.com/quickpost/post-sync-service/pkg/timex"
)

// Post 帖子表
// ID 是 21 位 nanoid（客户端生成或服务端补发），UpdatedAt 是 LWW 合并依据
type Post struct {
	ID        string     `gorm:"column:id;primaryKey;type:text"`
	UID       int64      `gorm:"column:uid;index;not null"`
	Content   string     `gorm:"column:content;type:text;not null"`
	Variant   string     `gorm:"column:variant;type:text;not null"`
	CreatedAt timex.Time `gorm:"column:created_at;not null"`
	UpdatedAt timex.Time `gorm:"column:updated_at;not null"`
}

// TableName 获取表名
func (Post) TableName() string {
	return "post"
}

// User 用户表
// code_hash / code_attempts / code_created_at 保存未消费的登录挑战
type User struct {
	UID           int64       `gorm:"column:uid;primaryKey;autoIncrement"`
	Email         string      `gorm:"column:email;uniqueIndex;type:text;not null"`
	CodeHash      string      `gorm:"column:code_hash;type:text;not null;default:''"`
	CodeAttempts  int         `gorm:"column:code_attempts;not null;default:0"`
	CodeCreatedAt *timex.Time `gorm:"column:code_created_at"`
	CreatedAt     timex.Time  `gorm:"column:created_at;not null"`
	UpdatedAt     timex.Time  `gorm:"column:updated_at;not null"`
}

// TableName 获取表名
func (User) TableName() string {
	return "user"
}

// AutoMigrate 迁移指定表结构
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "Post":
		return db.AutoMigrate(Post{})

	case "User":
		return db.AutoMigrate(User{})
	}
	return nil
}

// AutoMigrateAll 迁移全部表结构
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Post{}, User{})
}
