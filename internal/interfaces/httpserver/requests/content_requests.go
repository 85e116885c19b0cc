package requests

// CreateContactRequest carries a contact form submission. Phone is optional.
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
