package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/skip2/go-qrcode"

	"eventhub/internal/models"
)

// CheckInClaim is the payload carried inside a booking QR code. The
// scanner decrypts it and advances the booking to checked_in.
type CheckInClaim struct {
	BookingID  string `json:"booking_id"`
	EventID    string `json:"event_id"`
	AttendeeID string `json:"attendee_id"`
}

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// GenerateEncryptedQR renders the booking's check-in claim as a 256px PNG
// QR code with the claim AES-encrypted so attendees cannot forge one
// another's codes.
func (g *Generator) GenerateEncryptedQR(b models.Booking) ([]byte, error) {
	claim := CheckInClaim{
		BookingID:  b.ID,
		EventID:    b.EventID,
		AttendeeID: b.AttendeeID,
	}
	data, err := json.Marshal(claim)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

// DecodePayload reverses the encryption on a scanned QR payload.
func (g *Generator) DecodePayload(payload string) (*CheckInClaim, error) {
	data, err := decryptAES(payload, g.secret)
	if err != nil {
		return nil, err
	}
	var claim CheckInClaim
	if err := json.Unmarshal(data, &claim); err != nil {
		return nil, err
	}
	if claim.BookingID == "" {
		return nil, errors.New("payload carries no booking id")
	}
	return &claim, nil
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

func decryptAES(encoded string, key []byte) ([]byte, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aes.BlockSize {
		return nil, errors.New("ciphertext too short")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := ciphertext[:aes.BlockSize]
	data := make([]byte, len(ciphertext)-aes.BlockSize)
	stream := cipher.NewCFBDecrypter(block, iv)
	stream.XORKeyStream(data, ciphertext[aes.BlockSize:])

	return data, nil
}
