package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// createTokenHandler godoc
//
//	@Summary		Logs in the back-office admin
//	@Description	Exchanges the admin credentials for an access/refresh token pair
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		LoginPayload	true	"Admin credentials"
//	@Success		200		{object}	TokenPair		"Token pair"
//	@Failure		400		{object}	error
//	@Failure		401		{object}	error
//	@Router			/authentication/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !strings.EqualFold(payload.Email, app.config.auth.admin.email) {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid credentials"))
		return
	}

	err := bcrypt.CompareHashAndPassword(
		[]byte(app.config.auth.admin.passwordHash),
		[]byte(payload.Password),
	)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid credentials"))
		return
	}

	accessToken, refreshToken, err := app.authenticator.GenerateTokens(app.config.auth.admin.email)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, TokenPair{accessToken, refreshToken}); err != nil {
		app.internalServerError(w, r, err)
	}
}

type RefreshPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// refreshTokenHandler godoc
//
//	@Summary		Refreshes the admin session
//	@Description	Exchanges a valid refresh token for a new token pair
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		RefreshPayload	true	"Refresh token"
//	@Success		200		{object}	TokenPair		"Token pair"
//	@Failure		401		{object}	error
//	@Router			/authentication/refresh [post]
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload RefreshPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	jwtToken, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	claims, _ := jwtToken.Claims.(jwt.MapClaims)
	email, _ := claims["sub"].(string)
	if !strings.EqualFold(email, app.config.auth.admin.email) {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("unknown subject"))
		return
	}

	accessToken, refreshToken, err := app.authenticator.GenerateTokens(app.config.auth.admin.email)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, TokenPair{accessToken, refreshToken}); err != nil {
		app.internalServerError(w, r, err)
	}
}
