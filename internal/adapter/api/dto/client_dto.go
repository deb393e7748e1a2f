package dto

// ClientRequest representa os dados de cadastro e edição de um cliente
type ClientRequest struct {
	BusinessCategory string            `json:"business_category"`
	Name             string            `json:"name" binding:"required"`
	Document         string            `json:"document"`
	Phone            string            `json:"phone"`
	Email            string            `json:"email"`
	Notes            string            `json:"notes"`
	BirthDate        string            `json:"birth_date"`
	Attributes       map[string]string `json:"attributes"`
}

// MessageRequest é uma mensagem de atendimento enviada ao cliente
type MessageRequest struct {
	Channel string `json:"channel" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// InboundMessageRequest registra uma mensagem recebida do cliente
type InboundMessageRequest struct {
	Channel    string `json:"channel" binding:"required"`
	Body       string `json:"body" binding:"required"`
	ExternalID string `json:"external_id"`
}
