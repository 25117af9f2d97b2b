package entity

type IdentityKind int

const (
	KindAnonymous IdentityKind = iota
	KindUser
	KindAdmin
)

func (k IdentityKind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAdmin:
		return "admin"
	}
	return "anonymous"
}

// Identity is the resolved principal of a request. UserID and Email are only
// set for KindUser; the admin is a shared credential with no user row.
type Identity struct {
	Kind   IdentityKind
	UserID int64
	Email  string
}

func AnonymousIdentity() Identity {
	return Identity{Kind: KindAnonymous}
}

func UserIdentity(u User) Identity {
	return Identity{Kind: KindUser, UserID: u.ID, Email: u.Email}
}

func AdminIdentity() Identity {
	return Identity{Kind: KindAdmin}
}

func (i Identity) IsUser() bool {
	return i.Kind == KindUser
}

func (i Identity) IsAdmin() bool {
	return i.Kind == KindAdmin
}
