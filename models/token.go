package models

import "time"

// Token 表示一次登录颁发的访问令牌记录
// 按用户批量删除即实现"退出所有设备"
type Token struct {
	BaseModel
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenID   string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"token_id"` // JWT的jti
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	ExpiresAt time.Time `json:"expires_at"`

	// 关联关系
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
