package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PrincipalPatient is the principal type claim carried by patient tokens.
const PrincipalPatient = "patient"

// Claims is the fixed claim payload embedded in both tokens of a pair. The
// identifier is carried twice (patient_id and user_id) for compatibility with
// existing clients.
type Claims struct {
	PatientID int64  `json:"patient_id"`
	UserID    int64  `json:"user_id"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// Pair is an access/refresh token pair minted for one identity. Both tokens
// embed identical identity and type claims.
type Pair struct {
	Access  string `json:"token"`
	Refresh string `json:"refresh"`
}

// Minter issues signed token pairs. Signing secrets are process-wide
// configuration; construction fails fast when they are absent.
type Minter struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewMinter builds a Minter with independent access/refresh secrets and TTLs.
func NewMinter(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Minter {
	return &Minter{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Mint issues an access/refresh pair for the identity. Minting is stateless;
// nothing is persisted server-side.
func (m *Minter) Mint(identityID int64, principalType string) (Pair, error) {
	now := time.Now()
	access, err := m.sign(identityID, principalType, now, m.accessTTL, m.accessSecret)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := m.sign(identityID, principalType, now, m.refreshTTL, m.refreshSecret)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

func (m *Minter) sign(identityID int64, principalType string, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		PatientID: identityID,
		UserID:    identityID,
		Type:      principalType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identityID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
