package auth

// Principal is the authenticated caller, resolved once per request by the auth middleware
// and passed explicitly into every service call.
type Principal struct {
	UserID    uint
	Username  string
	SessionID string
}

func (p Principal) Valid() bool { return p.UserID != 0 }
