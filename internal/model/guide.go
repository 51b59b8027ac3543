package model

import (
	"time"
)

// Guide is a markdown article from the content directory: SMARTER method
// walkthroughs, mentorship practice, devotional reading plans.
type Guide struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Content     string    `json:"-"`
	HTMLContent string    `json:"htmlContent"`
}
