package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/chorok-lab/carbon-exchange/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memoryAccount struct {
	uid      string
	passHash []byte
}

// MemoryProvider is the fallback identity provider used when Firebase is not
// configured. Tokens are opaque uuids valid until sign-out.
type MemoryProvider struct {
	mu       sync.Mutex
	accounts map[string]memoryAccount // keyed by lowercased email
	sessions map[string]string        // token -> uid
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts: make(map[string]memoryAccount),
		sessions: make(map[string]string),
	}
}

func (p *MemoryProvider) SignUp(ctx context.Context, email, password, name string, role model.Role) (string, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[key]; exists {
		return "", ErrEmailTaken
	}
	uid := uuid.NewString()
	p.accounts[key] = memoryAccount{uid: uid, passHash: h}
	return uid, nil
}

func (p *MemoryProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	p.mu.Lock()
	acc, ok := p.accounts[key]
	p.mu.Unlock()
	if !ok {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.passHash, []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	p.mu.Lock()
	p.sessions[token] = acc.uid
	p.mu.Unlock()
	return token, nil
}

func (p *MemoryProvider) Verify(ctx context.Context, token string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	uid, ok := p.sessions[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return uid, nil
}

func (p *MemoryProvider) SignOut(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for token, owner := range p.sessions {
		if owner == uid {
			delete(p.sessions, token)
		}
	}
	return nil
}
