package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeReset marca los tokens de restablecimiento de contraseña; no sirven como sesión.
const PurposeReset = "reset"

// ErrWrongPurpose se devuelve al usar un token de un propósito en otro.
var ErrWrongPurpose = errors.New("jwt: propósito del token no válido")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role es el nombre del tipo de usuario ("Administrador", "Instructor", "Almacen").
type Claims struct {
	jwt.RegisteredClaims
	Cedula   int64  `json:"cedula"`
	CentroID int    `json:"centro_id"`
	Role     string `json:"role"`
	Purpose  string `json:"purpose,omitempty"`
}

// Identity datos de sesión que viajan en el token.
type Identity struct {
	Cedula   int64
	CentroID int
	Role     string
}

// Generate genera un token de sesión firmado para la identidad dada.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	return sign(secret, id, "", issuer, expMinutes)
}

// GenerateReset genera un token de restablecimiento de contraseña para cedula.
func GenerateReset(secret string, cedula int64, issuer string, expMinutes int) (string, error) {
	return sign(secret, Identity{Cedula: cedula}, PurposeReset, issuer, expMinutes)
}

func sign(secret string, id Identity, purpose, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(id.Cedula, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Cedula:   id.Cedula,
		CentroID: id.CentroID,
		Role:     id.Role,
		Purpose:  purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un token de sesión y devuelve la identidad.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es de restablecimiento.
func Parse(secret, tokenString string) (Identity, error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return Identity{}, err
	}
	if claims.Purpose != "" {
		return Identity{}, ErrWrongPurpose
	}
	return Identity{Cedula: claims.Cedula, CentroID: claims.CentroID, Role: claims.Role}, nil
}

// ParseReset valida un token de restablecimiento y devuelve la cédula.
func ParseReset(secret, tokenString string) (int64, error) {
	claims, err := parse(secret, tokenString)
	if err != nil {
		return 0, err
	}
	if claims.Purpose != PurposeReset {
		return 0, ErrWrongPurpose
	}
	return claims.Cedula, nil
}

func parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ExpiresAt lee el claim exp sin verificar la firma (uso del lado cliente, que no conoce el secret).
// Header y payload deben ser base64url sin relleno y JSON válido; si no, o si falta exp, devuelve error.
func ExpiresAt(tokenString string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("jwt: token sin exp")
	}
	return exp.Time, nil
}
