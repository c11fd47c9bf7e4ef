package models

// User is stored in the "users" collection with the identity provider's
// uid as the document id.
type User struct {
	UID         string              `json:"uid" bson:"_id"`
	FirstName   string              `json:"firstName" bson:"firstName"`
	Surname     string              `json:"surname" bson:"surname"`
	Telephone   string              `json:"telephone,omitempty" bson:"telephone,omitempty"`
	Email       string              `json:"email" bson:"email"`
	Connections []ConnectionSummary `json:"connections" bson:"connections"`
}

// ConnectionSummary is the embedded peer entry kept in a user's
// connections list. Deduplicated by UID.
type ConnectionSummary struct {
	UID       string `json:"uid" bson:"uid"`
	FirstName string `json:"firstName" bson:"firstName"`
	Surname   string `json:"surname" bson:"surname"`
	Email     string `json:"email" bson:"email"`
}

// Summary returns the embedded form of the user for another user's
// connections list.
func (u *User) Summary() ConnectionSummary {
	return ConnectionSummary{
		UID:       u.UID,
		FirstName: u.FirstName,
		Surname:   u.Surname,
		Email:     u.Email,
	}
}

// DisplayName joins the name parts the way notification messages show them.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.Surname
}
