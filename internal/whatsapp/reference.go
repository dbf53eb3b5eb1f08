package whatsapp

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids/v2"
)

// ReferenceGenerator mints short order references like "EXT-J4K2M9" for the
// checkout message, so the shop can match a WhatsApp conversation back to a
// cart. References are hashid-encoded random nonces, not sequential.
type ReferenceGenerator struct {
	h *hashids.HashID
}

func NewReferenceGenerator(salt string) (*ReferenceGenerator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 6
	data.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("init reference generator: %w", err)
	}
	return &ReferenceGenerator{h: h}, nil
}

// Generate returns a fresh reference. Collisions are possible in principle but
// irrelevant: the reference only labels a chat, it is not a database key.
func (g *ReferenceGenerator) Generate() (string, error) {
	nonce := uuid.New()
	ints := make([]int, 4)
	for i := range ints {
		ints[i] = int(nonce[i*4])<<8 | int(nonce[i*4+1])
	}

	tag, err := g.h.Encode(ints)
	if err != nil {
		return "", fmt.Errorf("encode reference: %w", err)
	}
	if len(tag) > 8 {
		tag = tag[:8]
	}
	return "EXT-" + strings.ToUpper(tag), nil
}
