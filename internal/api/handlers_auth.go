package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/caloriesapp/backend/internal/models"
	"github.com/caloriesapp/backend/internal/security"
)

const oauthStateCookie = "oauth_state"

type oauthClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// GoogleRedirect starts the OAuth round trip. The state token goes into
// a short-lived cookie and must come back on the callback.
func (handler *Handler) GoogleRedirect(c *fiber.Ctx) error {
	if handler.googleOAuth == nil {
		return apiError(c, fiber.StatusNotFound, "google sign-in is not configured")
	}

	state, err := security.StateToken()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start sign-in")
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   300,
	})
	return c.Redirect(handler.googleOAuth.AuthCodeURL(state), fiber.StatusFound)
}

// GoogleCallback finishes the round trip and hands the client back to
// the app through the deep link, token in the fragment-free query.
func (handler *Handler) GoogleCallback(c *fiber.Ctx) error {
	if handler.googleOAuth == nil {
		return apiError(c, fiber.StatusNotFound, "google sign-in is not configured")
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return apiError(c, fiber.StatusBadRequest, "invalid state")
	}
	c.ClearCookie(oauthStateCookie)

	token, err := handler.googleOAuth.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		return apiError(c, fiber.StatusBadGateway, "code exchange failed")
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return apiError(c, fiber.StatusBadGateway, "missing id token")
	}

	idToken, err := handler.googleVerifier.Verify(c.Context(), rawIDToken)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "id token verification failed")
	}

	var claims oauthClaims
	if err := idToken.Claims(&claims); err != nil {
		return apiError(c, fiber.StatusBadGateway, "unreadable id token")
	}

	user, err := handler.findOrCreateUser(claims, providerGoogle)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "sign-in failed")
	}

	accessToken, err := handler.issueUserToken(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "sign-in failed")
	}
	return c.Redirect(fmt.Sprintf("%s?token=%s", handler.cfg.MobileDeepLink, url.QueryEscape(accessToken)), fiber.StatusFound)
}

type appleSignInPayload struct {
	IdentityToken string `json:"identity_token"`
	Name          string `json:"name"`
}

// AppleSignIn verifies a client-obtained identity token; Apple's native
// flow never touches our redirect endpoints.
func (handler *Handler) AppleSignIn(c *fiber.Ctx) error {
	if handler.appleVerifier == nil {
		return apiError(c, fiber.StatusNotFound, "apple sign-in is not configured")
	}

	var payload appleSignInPayload
	if err := c.BodyParser(&payload); err != nil || strings.TrimSpace(payload.IdentityToken) == "" {
		return apiError(c, fiber.StatusBadRequest, "missing identity token")
	}

	idToken, err := handler.appleVerifier.Verify(c.Context(), payload.IdentityToken)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "id token verification failed")
	}

	var claims oauthClaims
	if err := idToken.Claims(&claims); err != nil {
		return apiError(c, fiber.StatusBadGateway, "unreadable id token")
	}
	if claims.Name == "" {
		claims.Name = payload.Name
	}

	user, err := handler.findOrCreateUser(claims, providerApple)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "sign-in failed")
	}

	accessToken, err := handler.issueUserToken(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "sign-in failed")
	}
	return c.JSON(fiber.Map{"access_token": accessToken})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(fiber.Map{
		"id":           user.ID,
		"email":        user.Email,
		"name":         user.Name,
		"streak_count": user.StreakCount,
	})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	if err := handler.repos.Users.DeleteAccountAndRelatedData(currentUser(c).ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete account")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type oauthProvider int

const (
	providerGoogle oauthProvider = iota
	providerApple
)

// findOrCreateUser matches by provider id first, then by verified
// email, linking the provider id onto an existing account.
func (handler *Handler) findOrCreateUser(claims oauthClaims, provider oauthProvider) (models.User, error) {
	var (
		user  models.User
		found bool
		err   error
	)
	switch provider {
	case providerGoogle:
		user, found, err = handler.repos.Users.FindByGoogleID(claims.Subject)
	case providerApple:
		user, found, err = handler.repos.Users.FindByAppleID(claims.Subject)
	}
	if err != nil {
		return models.User{}, err
	}
	if found {
		return user, nil
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email != "" {
		user, found, err = handler.repos.Users.FindByNormalizedEmail(email)
		if err != nil {
			return models.User{}, err
		}
	}

	if !found {
		user = models.User{Name: claims.Name}
		if email != "" {
			user.Email = &email
		}
	}

	subject := claims.Subject
	switch provider {
	case providerGoogle:
		user.GoogleID = &subject
	case providerApple:
		user.AppleID = &subject
	}

	if !found {
		if err := handler.repos.Users.Create(&user); err != nil {
			return models.User{}, err
		}
		return user, nil
	}
	if err := handler.repos.Users.Save(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
