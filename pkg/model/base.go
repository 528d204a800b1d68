package model

import (
	"time"
)

// BaseModel 基础模型：自增主键 + 时间戳
//
// 注意：不带 gorm.DeletedAt。删除必须是硬删除，否则数据库的
// ON DELETE CASCADE 无法级联清理评论子树等关联数据。
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
