package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperror "gocorretora/internal/errors"
)

// maxLength é o limite do bcrypt: bytes além do 72º seriam ignorados silenciosamente.
const maxLength = 72

// Hasher gera e confere hashes bcrypt com custo fixo.
type Hasher struct {
	cost int
}

// NewHasher cria um Hasher. Custos fora do intervalo aceito pelo bcrypt usam bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash gera um hash novo (sal aleatório a cada chamada).
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) > maxLength {
		return "", apperror.NewValidationError(fmt.Sprintf("a senha não pode exceder %d bytes", maxLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", apperror.NewInternalError("falha ao gerar hash da senha", err)
	}
	return string(hash), nil
}

// Verify compara em tempo constante. Hash malformado resulta em false.
func (h *Hasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
