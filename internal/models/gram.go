package models

import "time"

// Модель грама (пост с сообщением)
type Gram struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"` // ID пользователя, создавшего грам
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy сообщает, является ли пользователь владельцем грама
func (g *Gram) OwnedBy(u *User) bool {
	return g != nil && u != nil && g.OwnerID == u.ID
}
