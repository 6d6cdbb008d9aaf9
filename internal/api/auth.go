package api

import (
	"context"

	"github.com/Veraticus/veggie-board/internal/model"
)

type envelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	envelope
	Commissioner model.Commissioner `json:"commissioner"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	envelope
	Name           string `json:"name"`
	Email          string `json:"email"`
	CommissionerID int    `json:"commissioner_id"`
}

// Login authenticates a commissioner.
func (c *Client) Login(ctx context.Context, email, password string) (model.Commissioner, error) {
	var resp loginResponse
	if err := c.post(ctx, "login.php", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return model.Commissioner{}, err
	}
	if !resp.Success {
		return model.Commissioner{}, rejected("login.php", resp.Message, MsgLoginFailed)
	}
	return resp.Commissioner, nil
}

// Signup registers a new commissioner. A rejection for an existing email
// unwraps to common.ErrAccountExists.
func (c *Client) Signup(ctx context.Context, name, email, password string) (model.Commissioner, error) {
	var resp signupResponse
	req := signupRequest{Name: name, Email: email, Password: password}
	if err := c.post(ctx, "signup.php", req, &resp); err != nil {
		return model.Commissioner{}, err
	}
	if !resp.Success {
		return model.Commissioner{}, rejected("signup.php", resp.Message, MsgSignupFailed)
	}
	return model.Commissioner{
		ID:    resp.CommissionerID,
		Name:  resp.Name,
		Email: resp.Email,
	}, nil
}
