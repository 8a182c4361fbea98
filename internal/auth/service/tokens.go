package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"salesops_backend/internal/auth/repository"
	"salesops_backend/internal/auth/transport"
)

func (s *Service) issueTokens(user repository.User, now time.Time) (transport.TokenPair, error) {
	accessExpiry := now.Add(s.cfg.GetAccessTokenTTL())
	access, err := s.signToken(user, "access", now, accessExpiry)
	if err != nil {
		return transport.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := s.signToken(user, "refresh", now, now.Add(s.cfg.GetRefreshTokenTTL()))
	if err != nil {
		return transport.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return transport.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: accessExpiry}, nil
}

func (s *Service) signToken(user repository.User, tokenType string, now, expiry time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"type":  tokenType,
		"roles": user.Roles,
		"iat":   now.Unix(),
		"exp":   expiry.Unix(),
	}
	if user.VendorID != nil {
		claims["vendor_id"] = user.VendorID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func (s *Service) parseRefreshToken(rawToken string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.cfg.GetJWTAccessSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, errInvalidRefresh
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errInvalidRefresh
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return uuid.Nil, errInvalidRefresh
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errInvalidRefresh
	}
	return userID, nil
}
