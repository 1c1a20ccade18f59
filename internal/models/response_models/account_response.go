package response_models

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type MemberResponse struct {
	MemberID         uint    `json:"memberId"`
	Account          string  `json:"account"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	MemberLevel      string  `json:"memberLevel"`
	IsActive         bool    `json:"isActive"`
	RegistrationTime string  `json:"registrationTime"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
	MemberID    uint   `json:"memberId"`
	Account     string `json:"account"`
	Name        string `json:"name"`
	MemberLevel string `json:"memberLevel"`
}

type AdminLoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresAt string `json:"expiresAt"`
	AdminID   uint   `json:"adminId"`
	Account   string `json:"account"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}
