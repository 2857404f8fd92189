package domain

import "time"

type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"` // bcrypt hashed
	ImageURL  *string   `db:"image_url"`
	Bio       *string   `db:"bio"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewUser(username, hashedPassword string, imageURL, bio *string) *User {
	now := time.Now().UTC()
	return &User{
		Username:  username,
		Password:  hashedPassword,
		ImageURL:  imageURL,
		Bio:       bio,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
