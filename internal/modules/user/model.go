// README: User account record mirrored from the auth provider.
package user

import (
	"time"

	"droptaxi/internal/store"
	"droptaxi/internal/types"
)

const Collection = "users"

type User struct {
	ID        types.ID  `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

const RoleAdmin = "admin"

func decodeUser(doc store.Document) User {
	m := doc.Data
	u := User{ID: types.ID(doc.ID)}
	u.Name, _ = m["name"].(string)
	u.Email, _ = m["email"].(string)
	u.Phone, _ = m["phone"].(string)
	u.Role, _ = m["role"].(string)
	u.CreatedAt, _ = m["createdAt"].(time.Time)
	return u
}
