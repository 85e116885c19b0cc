package content

import "time"

// Service is one entry of the public services catalog shown on the site.
type Service struct {
	ID           uint
	Title        string
	Description  string
	IconName     string
	DisplayOrder int
	CreatedAt    time.Time
}

// BlogPost is an article published on the site.
type BlogPost struct {
	ID          uint
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	ImageURL    *string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactRequest is a message left through the site's contact form.
type ContactRequest struct {
	ID        uint
	Name      string
	Email     string
	Phone     *string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}

const ContactStatusPending = "pending"
