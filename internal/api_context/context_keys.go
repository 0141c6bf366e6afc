package api_context

import "context"

type ctxKey string

const (
	DescriptorIDKey ctxKey = "descriptorID"
	AuthOwnerKey    ctxKey = "authOwner"
	AuthRolesKey    ctxKey = "authRoles"
)

func DescriptorIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(DescriptorIDKey).(int64)
	return id, ok
}

func AuthOwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(AuthOwnerKey).(string)
	return owner, ok
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}
