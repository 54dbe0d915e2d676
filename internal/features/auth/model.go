package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ProviderGitHub = "github"

// Identity is a local user bound to an external provider account. The pair
// (Provider, ProviderUserID) is unique.
type Identity struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Provider       string             `bson:"provider" json:"provider"`
	ProviderUserID string             `bson:"providerUserId" json:"providerUserId"`
	Username       string             `bson:"username" json:"username"`
	Email          *string            `bson:"email" json:"email"`
	AvatarURL      *string            `bson:"avatarUrl" json:"avatarUrl"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Profile is what the provider tells us about the account.
type Profile struct {
	Provider       string
	ProviderUserID string
	Username       string
	Email          *string
	AvatarURL      *string
}

// UserView is the public shape of an identity.
// @Description Signed-in user
type UserView struct {
	ID        string  `json:"id" example:"507f1f77bcf86cd799439011"`
	Username  string  `json:"username" example:"octocat"`
	Email     *string `json:"email" example:"octocat@github.com"`
	AvatarURL *string `json:"avatarUrl" example:"https://avatars.githubusercontent.com/u/1"`
}

func (i *Identity) View() UserView {
	return UserView{
		ID:        i.ID.Hex(),
		Username:  i.Username,
		Email:     i.Email,
		AvatarURL: i.AvatarURL,
	}
}

// ExchangeRequest represents the OAuth callback payload
// @Description Authorization code and PKCE verifier
type ExchangeRequest struct {
	Code         string `json:"code" binding:"required" example:"3584d83530557fdd1f46af8289938c8ef79f9dc5"`
	CodeVerifier string `json:"codeVerifier" binding:"required" example:"dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"`
}

// RefreshRequest represents token refresh data
// @Description Refresh token issued by a previous login or refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse is returned by refresh.
// @Description New token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType" example:"Bearer"`
}

// LoginResponse is returned by a successful code exchange.
// @Description Signed-in user and token pair
type LoginResponse struct {
	User         UserView `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType" example:"Bearer"`
}
