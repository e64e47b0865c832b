package request

// ContactRequest is the public contact form. Required fields are checked by
// the contact service so the form keeps its own error message.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UpdateWorkshopRequest is the request body for the workshop profile
type UpdateWorkshopRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=255"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Currency      *string `json:"currency" binding:"omitempty,max=10"`
	Timezone      *string `json:"timezone" binding:"omitempty,max=50"`
	ReceiptFooter *string `json:"receipt_footer" binding:"omitempty,max=255"`
}
