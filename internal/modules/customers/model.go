package customers

// InstitutionalClient is a healthcare institution served by the distributor.
type InstitutionalClient struct {
	ClientID  string `json:"client_id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Country   string `json:"country"`
	Level     string `json:"level"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
}

type CreateRequest struct {
	Name      string `json:"name" form:"name" binding:"required,min=3,max=100"`
	TaxID     string `json:"tax_id" form:"tax_id" binding:"required,min=5,max=20"`
	Country   string `json:"country" form:"country" binding:"required,len=2"`
	Level     string `json:"level" form:"level" binding:"required,oneof=I II III IV"`
	Specialty string `json:"specialty" form:"specialty" binding:"required,max=100"`
	Location  string `json:"location" form:"location" binding:"required,min=5,max=200"`
}

type CreateResponse struct {
	Message string              `json:"mssg"`
	Client  InstitutionalClient `json:"vendor"`
}
