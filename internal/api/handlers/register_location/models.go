package register_location

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// RegisterLocationRequest HTTP request model
type RegisterLocationRequest struct {
	Name        string  `json:"name"`
	ComplexName string  `json:"complexName"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	CourtCount  int     `json:"courtCount"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RegisterLocationRequest) ToServiceRequest(adminMobile string) *models.RegisterLocationRequest {
	return &models.RegisterLocationRequest{
		AdminMobile: adminMobile,
		Name:        r.Name,
		ComplexName: r.ComplexName,
		ImageURL:    r.ImageURL,
		CourtCount:  r.CourtCount,
	}
}
