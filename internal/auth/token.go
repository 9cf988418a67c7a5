package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	tokenPrefix        = "co"
	tokenIDBytes       = 4
	tokenSecretBytes   = 18
	maxTokenNameLength = 32
	maxContributorID   = 39
)

var handlePattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9._-]*[a-z0-9])?$`)

// NormalizeTokenName returns the canonical lowercase token name and
// validates allowed characters.
func NormalizeTokenName(raw string) (string, error) {
	name := strings.TrimSpace(strings.ToLower(raw))
	if name == "" {
		return "", fmt.Errorf("token name is required")
	}
	if len(name) > maxTokenNameLength {
		return "", fmt.Errorf("token name too long")
	}
	if !handlePattern.MatchString(name) {
		return "", fmt.Errorf("invalid token name")
	}
	return name, nil
}

// NormalizeContributorID returns the canonical lowercase contributor
// handle and validates allowed characters.
func NormalizeContributorID(raw string) (string, error) {
	id := strings.TrimSpace(strings.ToLower(raw))
	if id == "" {
		return "", fmt.Errorf("contributor id is required")
	}
	if len(id) > maxContributorID {
		return "", fmt.Errorf("contributor id too long")
	}
	if !handlePattern.MatchString(id) {
		return "", fmt.Errorf("invalid contributor id")
	}
	return id, nil
}

// Token is one freshly minted API credential. The secret appears only
// here; storage keeps its hash.
type Token struct {
	ID     string
	Secret string
}

// Raw returns the bearer form handed to the user: co_<id>_<secret>.
// The embedded ID lets verification find the stored hash without
// scanning the token table.
func (t Token) Raw() string {
	return fmt.Sprintf("%s_%s_%s", tokenPrefix, t.ID, t.Secret)
}

// NewToken mints a token with a random id and secret.
func NewToken() (Token, error) {
	id, err := randomHex(tokenIDBytes)
	if err != nil {
		return Token{}, err
	}
	secret, err := randomHex(tokenSecretBytes)
	if err != nil {
		return Token{}, err
	}
	return Token{ID: id, Secret: secret}, nil
}

// Split parses a raw bearer token into its id and secret parts.
func Split(raw string) (id, secret string, err error) {
	parts := strings.Split(strings.TrimSpace(raw), "_")
	if len(parts) != 3 || parts[0] != tokenPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("malformed token")
	}
	return parts[1], parts[2], nil
}

// HashSecret hashes one token secret for persistent storage.
func HashSecret(secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", fmt.Errorf("secret is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifySecret verifies a candidate secret against a bcrypt hash.
func VerifySecret(secretHash, candidate string) bool {
	if strings.TrimSpace(secretHash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(candidate)) == nil
}

func randomHex(numBytes int) (string, error) {
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
