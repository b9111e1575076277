// Package for API Handlers

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Resolves the authenticated user from the JWT stored in the context
func requesterID(ctx context.Context) (uuid.UUID, error) {
	token, ok := ctx.Value("jwt").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("JWT not found in context")
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	if err := uuid.Validate(subject); err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(subject), nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// Query-flag truth test, matching the permissive coercion clients expect
func truthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "t", "true", "y", "yes":
		return true
	}
	return false
}
