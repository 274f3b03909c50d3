package helper

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"seminar_manager/constants"
)

// GenerateCertificateNumber builds "SEMINEX-<last 6 digits of the unix
// millisecond timestamp>-<4-digit zero-padded random suffix>".
func GenerateCertificateNumber() (string, error) {
	timestamp := fmt.Sprintf("%d", time.Now().UnixMilli())
	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%04d", constants.CERTIFICATE_PREFIX, timestamp[len(timestamp)-6:], suffix.Int64()), nil
}

// GenerateVerificationCode returns 8 uppercase hex characters from a
// cryptographically random 4-byte source.
func GenerateVerificationCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
