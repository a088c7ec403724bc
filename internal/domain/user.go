package domain

import "time"

const (
	UserTypeAdmin     = "admin"
	UserTypeOrganizer = "organizer"
	UserTypeReader    = "reader"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) CanManage() bool {
	return u.Type == UserTypeAdmin || u.Type == UserTypeOrganizer
}
