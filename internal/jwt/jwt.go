// Package jwt provides functions for creating and verifying JSON Web Tokens (JWTs).

package jwt

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jose "gopkg.in/square/go-jose.v2"
)

const issuer = "playlist-backend"

type JWTParams struct {
	UserID string
	Email  string
}

// Reads the JWKS file and returns the latest KID.
// Assumes the first key in the JWKS is the latest one.
func getLatestKID() (string, error) {
	jwks, err := readJWKS()
	if err != nil {
		return "", err
	}
	if len(jwks.Keys) == 0 {
		return "", fmt.Errorf("No keys found in JWKS")
	}

	return jwks.Keys[0].KeyID, nil
}

func readJWKS() (jose.JSONWebKeySet, error) {
	var jwks jose.JSONWebKeySet
	jwksPath := os.Getenv("JWKS_PATH")
	if _, err := os.Stat(jwksPath); err != nil {
		return jwks, fmt.Errorf("Invalid JWKS_PATH: %w", err)
	}

	data, err := os.ReadFile(jwksPath)
	if err != nil {
		return jwks, fmt.Errorf("Failed to read JWKS file: %w", err)
	}
	if err := json.Unmarshal(data, &jwks); err != nil {
		return jwks, fmt.Errorf("Failed to unmarshal JWKS file: %w", err)
	}
	return jwks, nil
}

// Writes a single-key JWKS for the given public key. Newest key first.
func WriteJWKS(path string, pub *rsa.PublicKey, kid string) error {
	jwks := jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{
				Key:       pub,
				KeyID:     kid,
				Algorithm: "RS256",
				Use:       "sig",
			},
		},
	}
	data, err := json.Marshal(jwks)
	if err != nil {
		return fmt.Errorf("Failed to marshal JWKS: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Creates a JWT
func CreateJWT(params JWTParams, privateKeyBytes []byte) (string, error) {

	kid, err := getLatestKID()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"sub":   params.UserID,
		"email": params.Email,
		"iss":   issuer,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyBytes)
	if err != nil {
		return "", err
	}

	signed, err := token.SignedString(privateKey)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Validates a JWT
func ValidateJWT(rawToken string) (*jwt.Token, error) {

	jwks, err := readJWKS()
	if err != nil {
		return nil, err
	}

	// Create JWT parse function
	parserFunc := func(token *jwt.Token) (interface{}, error) {
		kidVal, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("Missing/invalid kid value")
		}

		keyMatches := jwks.Key(kidVal)
		if len(keyMatches) == 0 {
			return nil, fmt.Errorf("No key for kid %q", kidVal)
		}

		pub, ok := keyMatches[0].Key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("Invalid key type for kid %q. Expected RSA.", kidVal)
		}
		return pub, nil
	}

	// Parse the token
	token, err := jwt.Parse(
		rawToken,
		parserFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	return token, err
}
