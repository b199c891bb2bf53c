package dto

import "time"

// RegisterCompanyRequest entrada para el auto-registro de una empresa nueva
// junto con su primer administrador (creación atómica).
type RegisterCompanyRequest struct {
	CompanyName        string `json:"company_name" validate:"required,min=2,max=200"`
	CompanyDescription string `json:"company_description" validate:"omitempty,max=500"`
	AdminName          string `json:"admin_name" validate:"required,min=1,max=200"`
	AdminEmail         string `json:"admin_email" validate:"required,email"`
	AdminPassword      string `json:"admin_password" validate:"required,min=8"`
}

// RegisterCompanyResponse empresa creada y su administrador fundador.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   UserResponse    `json:"admin"`
}

// JoinRequestRequest entrada para solicitar unirse a una empresa existente.
// El usuario queda PENDING hasta que un admin de esa empresa lo apruebe.
type JoinRequestRequest struct {
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
