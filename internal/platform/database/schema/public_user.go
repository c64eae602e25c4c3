package schema

import "github.com/taibuivan/tvcatalog/internal/platform/postgres"

// UserTable represents the 'users' table
type UserTable struct {
	Table    string
	ID       string
	Username string
	Email    string
	Password string
	Admin    string
}

// User is the schema definition for users
var User = UserTable{
	Table:    "users",
	ID:       "id",
	Username: "username",
	Email:    "email",
	Password: "password",
	Admin:    "admin",
}

// Columns lists the public columns. The password hash is selected explicitly where needed.
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Admin}
}

func (t UserTable) Target() postgres.Target {
	return postgres.Target{Table: t.Table, Key: t.ID, Columns: t.Columns()}
}
