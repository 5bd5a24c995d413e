package utils

import "helpdesk-app/internal/models"

// AccessPolicy is the closed set of authorization levels an endpoint can
// require. Route groups enforce Public/Authenticated/SecretaryOnly up front;
// SelfOrSecretary is checked against the loaded record's owner.
type AccessPolicy int

const (
	Public AccessPolicy = iota
	Authenticated
	SelfOrSecretary
	SecretaryOnly
)

// Authorize decides whether the caller may perform an action. ownerID is the
// stored owner of the target record; it is ignored for policies that do not
// compare ownership. A nil session means the request carried no valid cookie.
func Authorize(sess *Session, policy AccessPolicy, ownerID string) error {
	if policy == Public {
		return nil
	}
	if sess == nil {
		return models.ErrUnauthenticated
	}

	switch policy {
	case Authenticated:
		return nil
	case SelfOrSecretary:
		if sess.Role == models.RoleSecretary || sess.UserID == ownerID {
			return nil
		}
		return models.ErrForbidden
	case SecretaryOnly:
		if sess.Role == models.RoleSecretary {
			return nil
		}
		return models.ErrForbidden
	}
	return models.ErrForbidden
}
