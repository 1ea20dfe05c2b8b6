package dto

type AuthenticationRequest struct {
	UserID      string `json:"UserId"`
	Password    string `json:"Password"`
	CompanyCode string `json:"companyCode"`
}

type AuthenticationResult struct {
	TokenValue string `json:"tokenValue"`
	UserID     string `json:"userId,omitempty"`
	Company    string `json:"companyCode,omitempty"`
}

// AuthenticationResponse covers both the wrapped and the flat token layouts.
type AuthenticationResponse struct {
	Status  any                   `json:"status"`
	Message string                `json:"message"`
	Result  *AuthenticationResult `json:"result"`

	TokenValue      string `json:"TokenValue"`
	LowerToken      string `json:"token"`
	CapitalizeToken string `json:"Token"`
}

func (r AuthenticationResponse) Token() string {
	switch {
	case r.Result != nil && r.Result.TokenValue != "":
		return r.Result.TokenValue
	case r.TokenValue != "":
		return r.TokenValue
	case r.LowerToken != "":
		return r.LowerToken
	default:
		return r.CapitalizeToken
	}
}
