package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signedToken mints an HS256 token for tests. The signature never matters
// here; decoding is unverified.
func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return token
}

func TestIsExpired_FutureExpiry(t *testing.T) {
	token := signedToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u1",
	})
	if IsExpired(token) {
		t.Error("token with future exp should not be expired")
	}
}

func TestIsExpired_PastExpiry(t *testing.T) {
	token := signedToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if !IsExpired(token) {
		t.Error("token with past exp should be expired")
	}
}

func TestIsExpired_ExpiryAtNow(t *testing.T) {
	now := time.Now()
	token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now)})
	if !isExpiredAt(token, now) {
		t.Error("exp == now should be expired")
	}
}

func TestIsExpired_NoExpClaim(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{Subject: "u1"})
	if !IsExpired(token) {
		t.Error("token without exp should be expired")
	}
}

func TestIsExpired_Malformed(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b", "a.!!!.c"} {
		if !IsExpired(token) {
			t.Errorf("malformed token %q should be expired", token)
		}
	}
}

func TestDecode_CustomClaims(t *testing.T) {
	token := signedToken(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:    "u1",
		CompanyID: "c1",
	})
	claims, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.UserID != "u1" || claims.CompanyID != "c1" {
		t.Errorf("claims = %+v, want user_id=u1 company_id=c1", claims)
	}
}
