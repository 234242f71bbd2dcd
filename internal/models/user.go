package models

// User represents a row in the users table.
type User struct {
	ID    int    `json:"id"    db:"id"`
	Name  string `json:"name"  db:"name"`
	Email string `json:"email" db:"email"`
}

// CreateUserRequest is the JSON body for POST /user/.
type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
}

func (r CreateUserRequest) User() *User {
	return &User{Name: r.Name, Email: r.Email}
}
