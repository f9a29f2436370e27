package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	qrTicketPrefix    = "ticket:"
	qrSignaturePrefix = "signature:"
	qrImageSize       = 256
)

func generateSignature(code, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(code))
	return hex.EncodeToString(h.Sum(nil))
}

// SignTicketCode builds the payload encoded in a ticket's QR image.
func SignTicketCode(code, secretKey string) string {
	return fmt.Sprintf("%s%s;%s%s", qrTicketPrefix, code, qrSignaturePrefix, generateSignature(code, secretKey))
}

// VerifyTicketQR checks a scanned payload and returns the ticket code it
// carries.
func VerifyTicketQR(qrData, secretKey string) (string, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], qrTicketPrefix) || !strings.HasPrefix(parts[1], qrSignaturePrefix) {
		return "", fmt.Errorf("invalid QR data format")
	}

	code := strings.TrimPrefix(parts[0], qrTicketPrefix)
	signature := strings.TrimPrefix(parts[1], qrSignaturePrefix)
	expected := generateSignature(code, secretKey)
	if code == "" || !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", fmt.Errorf("invalid QR code signature")
	}
	return code, nil
}

func RenderTicketQR(code, secretKey string) ([]byte, error) {
	return qrcode.Encode(SignTicketCode(code, secretKey), qrcode.Medium, qrImageSize)
}
