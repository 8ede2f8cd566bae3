package domain

// User is a record returned by the simulated directory fetch.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// Initials returns the avatar letters.
func (u User) Initials() string {
	return Initials(u.Name)
}
