// Package permission is the access-control engine: four named policies
// evaluated at two granularities. Collection checks run before anything is
// fetched (gating list/create); object checks run after the target object has
// been loaded and may consult its owner. All functions are pure.
package permission

import "github.com/critiq/review-platform/internal/core/domain"

// VerbClass splits HTTP verbs into read-only and mutating operations.
type VerbClass int

const (
	// Safe covers list and retrieve operations.
	Safe VerbClass = iota
	// Unsafe covers create, update and delete.
	Unsafe
)

// Owned is the capability an object must expose for ownership-aware checks.
type Owned interface {
	OwnerUsername() string
}

// Policy selects one of the fixed access rules. Handlers bind exactly one
// policy per resource.
type Policy int

const (
	// AdminOnly admits admins (or superusers) and nobody else, for reads
	// and writes alike.
	AdminOnly Policy = iota
	// SelfOnly admits any authenticated principal at collection scope and,
	// at object scope, only the account the object belongs to.
	SelfOnly
	// AdminOrReadOnly admits everyone for safe verbs and admins for the rest.
	AdminOrReadOnly
	// ReviewComment admits everyone for safe verbs; writes require an
	// authenticated principal at collection scope and, at object scope, the
	// object's author or a moderator. Admin grants nothing extra here.
	ReviewComment
)

func (p Policy) String() string {
	switch p {
	case AdminOnly:
		return "admin_only"
	case SelfOnly:
		return "self_only"
	case AdminOrReadOnly:
		return "admin_or_read_only"
	case ReviewComment:
		return "review_comment"
	default:
		return "unknown"
	}
}

// AllowCollection decides list/create access before any object is fetched.
func (p Policy) AllowCollection(pr domain.Principal, v VerbClass) bool {
	switch p {
	case AdminOnly:
		return pr.IsAdmin()
	case SelfOnly:
		return pr.Authenticated
	case AdminOrReadOnly:
		return v == Safe || pr.IsAdmin()
	case ReviewComment:
		return v == Safe || pr.Authenticated
	default:
		return false
	}
}

// AllowObject decides retrieve/update/delete access for a fetched object.
// obj may be nil for policies that do not consult ownership.
func (p Policy) AllowObject(pr domain.Principal, v VerbClass, obj Owned) bool {
	switch p {
	case AdminOnly:
		return pr.IsAdmin()
	case SelfOnly:
		return obj != nil && pr.IsSelf(obj.OwnerUsername())
	case AdminOrReadOnly:
		return v == Safe || pr.IsAdmin()
	case ReviewComment:
		if v == Safe {
			return true
		}
		return pr.IsModerator() || (obj != nil && pr.Authenticated && pr.IsSelf(obj.OwnerUsername()))
	default:
		return false
	}
}

// Denial converts a failed check into the matching domain error: anonymous
// callers get ErrUnauthenticated, everyone else ErrForbidden.
func Denial(pr domain.Principal) error {
	if !pr.Authenticated {
		return domain.ErrUnauthenticated
	}
	return domain.ErrForbidden
}
