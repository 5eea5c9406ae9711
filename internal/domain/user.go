package domain

// User is the system user table row.
type User struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

func NewUser(firstName, lastName, email string) User {
	return User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
}

// UserV1 is the previous version of the user row, kept so old pages can
// still be mapped forward.
type UserV1 struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// MapToCurrent lifts a v1 row into the current shape.
func (old UserV1) MapToCurrent() User {
	return User{
		FirstName: old.FirstName,
		LastName:  old.LastName,
		Email:     "",
	}
}

// SystemUser is the well-known identifier records created by the engine
// itself are attributed to.
var SystemUser = UUID{
	Data1: 26997595,
	Data2: 17129,
	Data3: 63502,
}
