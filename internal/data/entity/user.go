package entity

type User struct {
	Base
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
