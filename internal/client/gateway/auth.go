package gateway

import (
	"context"
	"net/http"

	"github.com/gestorapp/gestor/internal/models"
)

func (g *Gateway) SignUp(ctx context.Context, email, password, fullName string) (*models.User, error) {
	var user models.User
	err := g.do(ctx, http.MethodPost, "/auth/signup", nil, map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn authenticates and installs the returned token pair on the gateway.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	var resp struct {
		User         *models.User `json:"user"`
		AccessToken  string       `json:"accessToken"`
		RefreshToken string       `json:"refreshToken"`
	}
	err := g.do(ctx, http.MethodPost, "/auth/signin", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	g.SetTokens(resp.AccessToken, resp.RefreshToken)
	return resp.User, nil
}

func (g *Gateway) SignOut(ctx context.Context) error {
	_, refreshToken := g.Tokens()
	err := g.do(ctx, http.MethodPost, "/auth/signout", nil,
		map[string]string{"refreshToken": refreshToken}, nil)
	g.SetTokens("", "")
	return err
}

func (g *Gateway) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := g.do(ctx, http.MethodGet, "/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *Gateway) UpdateProfile(ctx context.Context, p models.ProfilePatch) (*models.User, error) {
	var user models.User
	if err := g.do(ctx, http.MethodPatch, "/profile", nil, p, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
