package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/utils"
)

// User 表示系统用户，可能通过注册创建，也可能由邀请流程自动创建
type User struct {
	BaseModel
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Phone           *string    `gorm:"type:varchar(20)" json:"phone"`
	ProfilePicture  *string    `gorm:"type:varchar(255)" json:"profile_picture"`

	// 关联关系：删除用户时级联删除其角色、居住关系、名下公寓和令牌
	Roles             []Role             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
	BuildingResidents []BuildingResident `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"building_residents,omitempty"`
	Apartments        []Apartment        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"apartments,omitempty"`
	Tokens            []Token            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了明文密码，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// HasVerifiedEmail 判断用户邮箱是否已验证
func (u *User) HasVerifiedEmail() bool {
	return u.EmailVerifiedAt != nil
}
