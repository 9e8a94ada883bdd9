package service

import (
	"context"

	"backoffice/internal/access"
)

// Actor 發出請求的人，僅供稽核紀錄使用
type Actor struct {
	Username string
	Role     access.Role
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom 沒有設定時回傳 public 匿名者
func ActorFrom(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return Actor{Role: access.RolePublic}
}
