package model

import "time"

// Quote is the daily motivational quote as produced by the advisor.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// SavedQuote is a quote the user bookmarked from the dashboard.
type SavedQuote struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Text      string    `db:"text" json:"text"`
	Author    string    `db:"author" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
