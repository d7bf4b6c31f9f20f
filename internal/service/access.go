package service

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/foodgram/backend/internal/types"
)

//go:embed access_model.conf
var accessModel string

//go:embed access_policy.csv
var accessPolicy string

// Objects and actions understood by the access policy
const (
	ObjectRecipe    = "recipe"
	ObjectReference = "reference"
	ObjectRelation  = "relation"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionWrite  = "write"
)

// Roles a viewer can hold relative to an object
const (
	RoleAnonymous = "anonymous"
	RoleUser      = "user"
	RoleAuthor    = "author"
	RoleAdmin     = "admin"
)

// AccessPolicy decides whether a viewer may act on an object. Roles form a
// chain admin > author > user > anonymous and the role is derived for each
// request, so ownership never has to be stored in the enforcer.
type AccessPolicy struct {
	enforcer *casbin.SyncedEnforcer
}

// NewAccessPolicy builds the enforcer from the embedded model and policy
func NewAccessPolicy() (*AccessPolicy, error) {
	m, err := model.NewModelFromString(accessModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, stringadapter.NewAdapter(accessPolicy))
	if err != nil {
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}

	return &AccessPolicy{enforcer: enforcer}, nil
}

// RoleOf derives the viewer's role relative to an object owned by owner.
// Pass uuid.Nil for objects without an owner.
func RoleOf(viewer types.Viewer, owner uuid.UUID) string {
	switch {
	case !viewer.Authenticated():
		return RoleAnonymous
	case viewer.IsAdmin:
		return RoleAdmin
	case owner != uuid.Nil && viewer.ID == owner:
		return RoleAuthor
	default:
		return RoleUser
	}
}

// Allowed reports whether viewer may perform act on obj
func (p *AccessPolicy) Allowed(viewer types.Viewer, owner uuid.UUID, obj, act string) bool {
	role := RoleOf(viewer, owner)
	ok, err := p.enforcer.Enforce(role, obj, act)
	if err != nil {
		log.Error().Err(err).Str("role", role).Str("object", obj).Str("action", act).Msg("access check failed")
		return false
	}
	return ok
}

// Check is Allowed turned into a PermissionError
func (p *AccessPolicy) Check(viewer types.Viewer, owner uuid.UUID, obj, act string) error {
	if p.Allowed(viewer, owner, obj, act) {
		return nil
	}
	if !viewer.Authenticated() {
		return UnauthorizedError("authentication credentials were not provided")
	}
	return PermissionError("you do not have permission to perform this action")
}
