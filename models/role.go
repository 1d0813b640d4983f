package models

// 角色名称枚举
const (
	RoleOwner           = "owner"
	RoleCommitteeMember = "committee_member"
	RoleJanitor         = "janitor"
	RoleSecurity        = "security"
)

// GovernorRoles 治理角色集合：每个Hub必须始终保留至少一个这样的角色
var GovernorRoles = []string{RoleOwner, RoleCommitteeMember}

// ValidRoleName 校验角色名称是否在枚举集合内
// janitor/security 会被存储和校验，但目前在任何授权检查中都不赋予额外权限
func ValidRoleName(name string) bool {
	switch name {
	case RoleOwner, RoleCommitteeMember, RoleJanitor, RoleSecurity:
		return true
	}
	return false
}

// Role 表示用户在某个Hub上持有的命名角色
// (user, hub) 的唯一性在插入前检查，属于软约束
type Role struct {
	BaseModel
	HouseHubID uint   `gorm:"not null;index" json:"house_hub_id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	Name       string `gorm:"type:varchar(50);not null" json:"name"`

	// 关联关系
	HouseHub *HouseHub `gorm:"foreignKey:HouseHubID" json:"house_hub,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
