package model

import "time"

const (
	RoleMember = 0
	RoleAdmin  = 1
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Phone     string `gorm:"uniqueIndex;size:20;not null"`
	Nickname  string `gorm:"size:64"`
	Avatar    string `gorm:"size:255"`
	School    string `gorm:"size:128;index"`
	Company   string `gorm:"size:128;index"`
	Bio       string `gorm:"type:text"`
	Role      int    `gorm:"not null;default:0"`
	VibeScore int    `gorm:"not null;default:0"` // 只允许增量修改
	CreatedAt time.Time
	UpdatedAt time.Time

	Interests []UserInterest `gorm:"foreignKey:UserID"`
	Photos    []UserPhoto    `gorm:"foreignKey:UserID"`
}

// UserInterest 用户兴趣标签，一行一个标签
type UserInterest struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"not null;uniqueIndex:uk_user_tag"`
	Tag    string `gorm:"size:32;not null;uniqueIndex:uk_user_tag"`
}

type UserPhoto struct {
	ID       uint64 `gorm:"primaryKey"`
	UserID   uint64 `gorm:"not null;index"`
	URL      string `gorm:"size:512;not null"`
	Position int    `gorm:"not null;default:0"`
}

// InterestTags 返回标签字符串切片
func (u *User) InterestTags() []string {
	tags := make([]string, 0, len(u.Interests))
	for _, i := range u.Interests {
		tags = append(tags, i.Tag)
	}
	return tags
}

func (u *User) PhotoURLs() []string {
	urls := make([]string, 0, len(u.Photos))
	for _, p := range u.Photos {
		urls = append(urls, p.URL)
	}
	return urls
}

func (u *User) IsAdmin() bool {
	return u.Role >= RoleAdmin
}
