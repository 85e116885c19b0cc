package responses

import (
	"time"

	"notaria-server/intake-api/internal/domain/content"
)

// ServiceResponse mirrors one services catalog row.
type ServiceResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	IconName     string `json:"icon_name"`
	DisplayOrder int    `json:"display_order"`
}

// BlogPostResponse mirrors one published article row.
type BlogPostResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	ImageURL    *string    `json:"image_url"`
	PublishedAt *time.Time `json:"published_at"`
}

// ContactRequestResponse mirrors one contact request row.
type ContactRequestResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewServiceListResponse converts the services catalog.
func NewServiceListResponse(services []*content.Service) []ServiceResponse {
	list := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		list = append(list, ServiceResponse{
			ID:           s.ID,
			Title:        s.Title,
			Description:  s.Description,
			IconName:     s.IconName,
			DisplayOrder: s.DisplayOrder,
		})
	}
	return list
}

// NewBlogPostListResponse converts published articles.
func NewBlogPostListResponse(posts []*content.BlogPost) []BlogPostResponse {
	list := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		list = append(list, BlogPostResponse{
			ID:          p.ID,
			Title:       p.Title,
			Slug:        p.Slug,
			Excerpt:     p.Excerpt,
			Content:     p.Content,
			ImageURL:    p.ImageURL,
			PublishedAt: p.PublishedAt,
		})
	}
	return list
}

// NewContactRequestResponse converts one contact request.
func NewContactRequestResponse(r *content.ContactRequest) ContactRequestResponse {
	return ContactRequestResponse{
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

// NewContactRequestListResponse converts the contact inbox.
func NewContactRequestListResponse(requests []*content.ContactRequest) []ContactRequestResponse {
	list := make([]ContactRequestResponse, 0, len(requests))
	for _, r := range requests {
		list = append(list, NewContactRequestResponse(r))
	}
	return list
}
