package api

import (
	"context"

	"nearfix-client/internal/common/httpclient"
)

// AuthClient drives the phone + OTP authentication endpoints. These are
// the only unauthenticated calls in the client.
type AuthClient struct {
	http *httpclient.Client
}

type sendOTPRequest struct {
	Phone string `json:"phoneNumber"`
}

type verifyOTPRequest struct {
	Phone string `json:"phoneNumber"`
	OTP   string `json:"otp"`
}

type registerWithRoleRequest struct {
	Phone string `json:"phoneNumber"`
	OTP   string `json:"otp"`
	Role  string `json:"role"`
}

// SendOTP asks the backend to deliver a one-time passcode to phone.
func (c *AuthClient) SendOTP(ctx context.Context, phone string) error {
	return c.http.PostJSON(ctx, "/auth/otp/send", sendOTPRequest{Phone: phone}, nil)
}

// VerifyOTP checks the passcode. Existing users get their credentials
// back; new users get IsNewUser=true and must register a role.
func (c *AuthClient) VerifyOTP(ctx context.Context, phone, otp string) (*AuthResult, error) {
	var result AuthResult
	err := c.http.PostJSON(ctx, "/auth/otp/verify", verifyOTPRequest{Phone: phone, OTP: otp}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterWithRole completes a new user's signup with the chosen role.
func (c *AuthClient) RegisterWithRole(ctx context.Context, phone, otp, role string) (*AuthResult, error) {
	var result AuthResult
	err := c.http.PostJSON(ctx, "/auth/otp/register-with-role",
		registerWithRoleRequest{Phone: phone, OTP: otp, Role: role}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
