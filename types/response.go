package types

type ApiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Status    int         `json:"status"`
	Token     string      `json:"token,omitempty"`
	EmailSent *bool       `json:"emailSent,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}
