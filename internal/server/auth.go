package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonathan/buyer-intel/internal/types"
)

// Claims represents JWT claims for an operator session.
type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// JWTService provides JWT token generation and validation functionality.
type JWTService struct {
	secret          string
	expirationHours int
}

// NewJWTService creates a new JWT service.
func NewJWTService(secret string, expirationHours int) *JWTService {
	if expirationHours <= 0 {
		expirationHours = 24
	}
	return &JWTService{
		secret:          secret,
		expirationHours: expirationHours,
	}
}

// GenerateToken generates a JWT token for the given operator.
func (s *JWTService) GenerateToken(operator string) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expirationHours) * time.Hour)

	claims := &Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}

// handleLogin authenticates the configured operator and issues a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil {
		s.errorResponse(w, http.StatusNotFound, "Authentication is not configured")
		return
	}

	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Compare against the bcrypt hash even on a username mismatch so both
	// failure paths take comparable time.
	hash := s.cfg.OperatorPassword
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil || req.Username != s.cfg.OperatorUser {
		s.errorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.jwtService.GenerateToken(req.Username)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Token: token})
}

// requireAuth validates the Bearer token when authentication is configured.
// Without a JWT secret the API is open and the handler is returned unchanged.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	if s.jwtService == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			s.errorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		if _, err := s.jwtService.ValidateToken(tokenString); err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	}
}
