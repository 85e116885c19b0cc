package entities

import (
	"time"

	"notaria-server/intake-api/internal/domain/content"
)

// Service models one row of the public services catalog.
type Service struct {
	ID           uint      `gorm:"primaryKey"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text;not null"`
	IconName     string    `gorm:"type:varchar(100);not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Service) TableName() string {
	return "services"
}

func (e *Service) ToDomain() *content.Service {
	return &content.Service{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		IconName:     e.IconName,
		DisplayOrder: e.DisplayOrder,
		CreatedAt:    e.CreatedAt,
	}
}

// BlogPost models a published article.
type BlogPost struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Excerpt     string     `gorm:"type:text;not null"`
	Content     string     `gorm:"type:text;not null"`
	ImageURL    *string    `gorm:"type:varchar(500)"`
	Published   bool       `gorm:"not null;default:false;index"`
	PublishedAt *time.Time `gorm:"type:timestamp"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

func (e *BlogPost) ToDomain() *content.BlogPost {
	return &content.BlogPost{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Excerpt:     e.Excerpt,
		Content:     e.Content,
		ImageURL:    e.ImageURL,
		Published:   e.Published,
		PublishedAt: e.PublishedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ContactRequest models a message left through the contact form.
type ContactRequest struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Phone     *string   `gorm:"type:varchar(50)"`
	Subject   string    `gorm:"type:varchar(255);not null"`
	Message   string    `gorm:"type:text;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}

// NewContactRequest maps a domain contact request onto its persisted form.
func NewContactRequest(r *content.ContactRequest) *ContactRequest {
	return &ContactRequest{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Subject:   r.Subject,
		Message:   r.Message,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func (e *ContactRequest) ToDomain() *content.ContactRequest {
	return &content.ContactRequest{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Subject:   e.Subject,
		Message:   e.Message,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}
