package suppliers

type CreateRequest struct {
	Name    string `json:"name" form:"name" binding:"required,min=3,max=100"`
	NIT     string `json:"nit" form:"nit" binding:"required,numeric,min=9,max=15"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Phone   string `json:"phone" form:"phone" binding:"required,min=7,max=15"`
	Address string `json:"address" form:"address" binding:"required,min=5,max=200"`
	Country string `json:"country" form:"country" binding:"required,len=2"`
}

type Provider struct {
	ProviderID string `json:"provider_id"`
	Name       string `json:"name"`
	NIT        string `json:"nit"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Country    string `json:"country"`
}

type CreateResponse struct {
	Message  string   `json:"message"`
	Provider Provider `json:"provider"`
}
