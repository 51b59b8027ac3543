package model

import "time"

type BibleNote struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Reference string    `db:"reference" json:"reference"`
	Text      string    `db:"text" json:"text"`
	Note      string    `db:"note" json:"note"`
	Favorite  bool      `db:"favorite" json:"favorite"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
