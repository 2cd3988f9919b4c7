package models

import "time"

// Модель комментария к граму
type Comment struct {
	ID        string    `json:"id"`
	GramID    string    `json:"gramId"`   // ID грама, к которому прикреплён комментарий
	AuthorID  string    `json:"authorId"` // ID пользователя, оставившего комментарий
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
