package domain

// TokenTypeBearer is returned alongside every issued access token.
const TokenTypeBearer = "bearer"

// ClaimMobileNumber is the claim carrying the verified mobile number.
const ClaimMobileNumber = "mobile_number"

// SendOTPRequest and VerifyOTPRequest carry values as received. An empty
// string is a value like any other and simply fails to match.
type SendOTPRequest struct {
	MobileNumber string `json:"mobile_number"`
}

type VerifyOTPRequest struct {
	MobileNumber string `json:"mobile_number"`
	OTP          string `json:"otp"`
}

// AccessGrant is the payload returned by a successful verify-otp.
type AccessGrant struct {
	MobileNumber string `json:"mobile_number"`
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
}
