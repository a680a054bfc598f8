package domain

import "context"

// PrincipalKind тип аутентифицированного субъекта
type PrincipalKind string

const (
	PrincipalUser  PrincipalKind = "user"
	PrincipalAdmin PrincipalKind = "admin"
)

// Principal аутентифицированный субъект запроса
// Role заполняется только для администраторов
type Principal struct {
	Kind PrincipalKind
	ID   int64
	Role AdminRole
}

// IsUser возвращает true для конечного пользователя
func (p *Principal) IsUser() bool {
	return p != nil && p.Kind == PrincipalUser && p.ID > 0
}

// IsAdmin возвращает true для администратора
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Kind == PrincipalAdmin && p.ID > 0
}

// Can проверяет право администратора; у пользователей прав нет
func (p *Principal) Can(c Capability) bool {
	return p.IsAdmin() && p.Role.Can(c)
}

type principalKey struct{}

// WithPrincipal кладет субъекта в контекст
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext достает субъекта из контекста
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok {
		return nil, false
	}
	return &p, true
}
