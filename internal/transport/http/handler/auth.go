package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/flexibill/internal/application/auth"
	"github.com/flexibill/internal/domain"
	"github.com/flexibill/internal/pkg/validate"
)

// AuthHandler serves the OTP login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

// otpBody accepts the mobile number as either mobileNumber or mobile_number.
// Pointers separate a missing key from an empty value.
type otpBody struct {
	MobileNumber      *string `json:"mobileNumber"`
	MobileNumberSnake *string `json:"mobile_number"`
	OTP               *string `json:"otp"`
}

func (b otpBody) mobileNumber() *string {
	if b.MobileNumber != nil {
		return b.MobileNumber
	}
	return b.MobileNumberSnake
}

// required on a pointer only checks presence, so "" passes through.
type sendOTPInput struct {
	MobileNumber *string `json:"mobile_number" validate:"required"`
}

type verifyOTPInput struct {
	MobileNumber *string `json:"mobile_number" validate:"required"`
	OTP          *string `json:"otp" validate:"required"`
}

func decodeOTPBody(w http.ResponseWriter, r *http.Request) (otpBody, bool) {
	var body otpBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return body, false
	}
	return body, true
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeOTPBody(w, r)
	if !ok {
		return
	}
	in := sendOTPInput{MobileNumber: body.mobileNumber()}
	if err := validate.Struct(in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.SendOTP(r.Context(), domain.SendOTPRequest{MobileNumber: *in.MobileNumber}); err != nil {
		httpError(w, r, err)
		return
	}
	writeSuccess(w, "OTP created successfully", nil)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeOTPBody(w, r)
	if !ok {
		return
	}
	in := verifyOTPInput{MobileNumber: body.mobileNumber(), OTP: body.OTP}
	if err := validate.Struct(in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	req := domain.VerifyOTPRequest{MobileNumber: *in.MobileNumber, OTP: *in.OTP}
	slog.DebugContext(r.Context(), "verify-otp", "mobile_number", req.MobileNumber)

	grant, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeSuccess(w, "OTP verified successfully", grant)
}
