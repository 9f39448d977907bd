package domain

type AuthType string

const (
	AuthJWT       AuthType = "jwt"
	AuthAPIKey    AuthType = "api_key"
	AuthAnonymous AuthType = "anonymous"
)

// Identity is the stable string keying rate and usage counters, plus how
// it was established. Anonymous callers get "anon:{ip}".
type Identity struct {
	ID            string
	Email         string
	AuthType      AuthType
	Authenticated bool
}

func AnonymousIdentity(ip string) Identity {
	if ip == "" {
		ip = "unknown"
	}
	return Identity{
		ID:       "anon:" + ip,
		AuthType: AuthAnonymous,
	}
}

// APIKeyRecord is the stored state for an issued API key.
type APIKeyRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	LastUsed  string `json:"lastUsed,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}
