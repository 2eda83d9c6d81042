package authController

import (
	"log"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email"

	oauthStateCookie = "oauth_state"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleRedirectURL,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

func facebookOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.AppConfig.FacebookAppID,
		ClientSecret: config.AppConfig.FacebookAppSecret,
		RedirectURL:  config.AppConfig.FacebookRedirectURL,
		Scopes:       []string{"email"},
		Endpoint:     facebook.Endpoint,
	}
}

type oauthProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GoogleLogin redirects the caller to Google's consent screen
func GoogleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{Name: oauthStateCookie, Value: state, HTTPOnly: true})
	return c.Redirect(googleOAuthConfig().AuthCodeURL(state))
}

// GoogleCallback exchanges the code, resolves the Google profile and
// issues the same bearer token shape as local login.
func GoogleCallback(c *fiber.Ctx) error {
	return oauthCallback(c, googleOAuthConfig(), googleUserInfoURL, "google_id", func(user *models.User, profile oauthProfile) {
		user.GoogleID = &profile.ID
	})
}

// FacebookLogin redirects the caller to Facebook's consent screen
func FacebookLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{Name: oauthStateCookie, Value: state, HTTPOnly: true})
	return c.Redirect(facebookOAuthConfig().AuthCodeURL(state))
}

// FacebookCallback exchanges the code, resolves the Graph API profile
// and issues the same bearer token shape as local login.
func FacebookCallback(c *fiber.Ctx) error {
	return oauthCallback(c, facebookOAuthConfig(), facebookUserInfoURL, "facebook_id", func(user *models.User, profile oauthProfile) {
		user.FacebookID = &profile.ID
	})
}

func oauthCallback(c *fiber.Ctx, conf *oauth2.Config, profileURL, idColumn string,
	link func(*models.User, oauthProfile)) error {

	if state := c.Query("state"); state == "" || state != c.Cookies(oauthStateCookie) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OAuth state", nil)
	}

	code := c.Query("code")
	if code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing authorization code", nil)
	}

	token, err := conf.Exchange(c.Context(), code)
	if err != nil {
		log.Printf("OAuth code exchange failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OAuth code exchange failed", nil)
	}

	var profile oauthProfile
	resp, err := resty.New().R().
		SetAuthToken(token.AccessToken).
		SetResult(&profile).
		Get(profileURL)
	if err != nil || resp.IsError() || profile.ID == "" {
		log.Printf("Error fetching OAuth profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch profile", nil)
	}

	db := database.Database.Db

	// Repeat logins look up by provider id; first login creates the account
	var user models.User
	if err := db.Where(idColumn+" = ? AND is_deleted = ?", profile.ID, false).First(&user).Error; err != nil {
		user = models.User{
			Name:  profile.Name,
			Email: profile.Email,
			Role:  models.RoleStudent,
		}
		link(&user, profile)

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error creating OAuth user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
		}
	}

	jwtToken, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User logged in successfully", fiber.Map{
		"token": jwtToken,
	})
}
