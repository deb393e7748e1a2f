package dto

// AppointmentRequest representa os dados de cadastro e edição de um agendamento
type AppointmentRequest struct {
	BusinessCategory string `json:"business_category"`
	ClientID         string `json:"client_id"`
	ClientName       string `json:"client_name"`
	ClientPhone      string `json:"client_phone"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Professional     string `json:"professional"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Status           string `json:"status"`
}
