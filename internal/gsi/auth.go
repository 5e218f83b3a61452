package gsi

// TokenGate filters pushes by the shared secret configured in the game
// client's gamestate_integration cfg. It is a pure check; logging and
// counting rejects is the caller's business.
type TokenGate struct {
	secret string
}

func NewTokenGate(secret string) TokenGate {
	return TokenGate{secret: secret}
}

// Allow reports whether the push carries the expected token.
func (g TokenGate) Allow(p *Payload) bool {
	return p != nil && p.Auth != nil && p.Auth.Token == g.secret
}
