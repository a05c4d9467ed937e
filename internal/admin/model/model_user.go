package model

import (
	"time"
)

/**
 * @file: model_user.go
 * @description: user model
 */

type User struct {
	Id         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	UserId     string    `gorm:"column:userid" json:"userid"` // external directory id
	Name       string    `gorm:"column:name;not null" json:"name"`
	Password   string    `gorm:"column:password;not null" json:"-"`
	Department string    `gorm:"column:department" json:"department"`
	Position   string    `gorm:"column:position" json:"position"`
	Mobile     string    `gorm:"column:mobile" json:"mobile"`
	Gender     string    `gorm:"column:gender" json:"gender"`
	Email      string    `gorm:"column:email" json:"email"`
	Avatar     string    `gorm:"column:avatar" json:"avatar"`
	Status     int       `gorm:"column:status;not null;default:1" json:"status"` // 0: disabled, 1: enabled
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type Login struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Username     string   `json:"username"` // display name, kept for the frontend
	UserId       string   `json:"userid"`
	Roles        []string `json:"roles"`
	Permissions  []string `json:"permissions"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Expires      int64    `json:"expires"` // unix milliseconds
	Department   string   `json:"department"`
	Position     string   `json:"position"`
	Mobile       string   `json:"mobile"`
	Email        string   `json:"email"`
	Avatar       string   `json:"avatar"`
}

type Register struct {
	Username   string   `json:"username" binding:"required"`
	Password   string   `json:"password" binding:"required"`
	Name       string   `json:"name"`
	UserId     string   `json:"userid"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Mobile     string   `json:"mobile"`
	Gender     string   `json:"gender"`
	Email      string   `json:"email"`
	Avatar     string   `json:"avatar"`
	Roles      []string `json:"roles"` // role codes; empty means the default role
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type RefreshResp struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Expires      int64  `json:"expires"`
}

// UpdateUserReq carries a partial update. Pointer fields distinguish
// "absent" from zero values: Status in particular must survive an explicit 0.
type UpdateUserReq struct {
	Username   *string   `json:"username,omitempty"`
	Name       *string   `json:"name,omitempty"`
	UserId     *string   `json:"userid,omitempty"`
	Department *string   `json:"department,omitempty"`
	Position   *string   `json:"position,omitempty"`
	Mobile     *string   `json:"mobile,omitempty"`
	Gender     *string   `json:"gender,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Avatar     *string   `json:"avatar,omitempty"`
	Status     *int      `json:"status,omitempty"`
	Roles      *[]string `json:"roles,omitempty"` // non-nil replaces all role bindings
}

// Fields flattens the set fields into a column-to-value map for the update
// statement, and returns the column names for the audit entry.
func (r *UpdateUserReq) Fields() (map[string]any, []string) {
	fields := make(map[string]any)
	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	setString("username", r.Username)
	setString("name", r.Name)
	setString("userid", r.UserId)
	setString("department", r.Department)
	setString("position", r.Position)
	setString("mobile", r.Mobile)
	setString("gender", r.Gender)
	setString("email", r.Email)
	setString("avatar", r.Avatar)
	if r.Status != nil {
		fields["status"] = *r.Status
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return fields, names
}

// UserWithRoles is a user row joined with its aggregated role codes.
type UserWithRoles struct {
	User
	Roles []string `json:"roles"`
}

type SearchPageReq struct {
	Page int `json:"page" binding:"required,min=1"`
	Size int `json:"size" binding:"required,min=1"`
}

type SearchVagueReq struct {
	Username string `json:"username"`
}
