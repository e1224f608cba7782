package domain

// DefaultOTPCode is the placeholder code assigned to every send-otp
// request until a real generator is wired in.
const DefaultOTPCode = "123456"

// OTPRecord is the stored association between a mobile number and its
// current code. ExpiresAt is a Unix timestamp; zero means no expiry.
type OTPRecord struct {
	MobileNumber string `json:"mobile_number" dynamodbav:"mobile_number"`
	Code         string `json:"code" dynamodbav:"code"`
	ExpiresAt    int64  `json:"expires_at,omitempty" dynamodbav:"expires_at,omitempty"`
}

// OTPCodeGenerator returns the code to assign for a mobile number.
type OTPCodeGenerator func(mobileNumber string) string

// FixedOTPCode always hands out DefaultOTPCode.
func FixedOTPCode(string) string { return DefaultOTPCode }
