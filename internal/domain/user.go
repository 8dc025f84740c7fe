package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Profile 与 User 一对一，四个展示字段全部可空
type Profile struct {
	UserID      int64     `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	DisplayName *string   `gorm:"size:64" json:"displayName"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	Role        *string   `gorm:"size:64" json:"role"`
	AvatarURL   *string   `gorm:"size:512" json:"avatarUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Profile) TableName() string { return "user_profiles" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	// CreateWithProfile 注册时同事务写入 profile
	CreateWithProfile(ctx context.Context, u *User, displayName string) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*Profile, error)
	// Upsert 整行覆盖：未提供的字段写成 NULL
	Upsert(ctx context.Context, p *Profile) error
}
