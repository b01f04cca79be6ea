package client

import (
	"context"
	"errors"
	"time"

	"github.com/imroc/req/v3"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// Access tokens are valid ~30 minutes; renew with margin.
const tokenTTL = 25 * time.Minute

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Authenticator exchanges an API key for a bearer token against the auth
// service and caches it until close to expiry.
type Authenticator struct {
	baseURL string
	apiKey  string
	client  *req.Client
	tokens  *cache.Cache
}

func NewAuthenticator(baseURL, apiKey string) *Authenticator {
	return &Authenticator{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  req.C(),
		tokens:  cache.New(tokenTTL, time.Minute),
	}
}

// AccessToken returns a cached token or performs the API-key exchange.
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	if token, found := a.tokens.Get(a.apiKey); found {
		return token.(string), nil
	}

	var body authResponse
	res, err := a.client.R().
		SetContext(ctx).
		SetHeader("apikey", a.apiKey).
		SetSuccessResult(&body).
		Post(a.baseURL + "/auth/apikey")
	if err != nil {
		return "", err
	}
	if res.IsErrorState() {
		log.WithField("status", res.StatusCode).Error("AuthAPIKeyExchange")
		return "", errors.New("auth service rejected api key")
	}
	if body.AccessToken == "" {
		return "", errors.New("auth service returned empty access token")
	}

	a.tokens.Set(a.apiKey, body.AccessToken, cache.DefaultExpiration)
	return body.AccessToken, nil
}
