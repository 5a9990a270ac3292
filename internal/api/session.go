package api

import (
	"context"

	"ecovoiceapi/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session is the signed-in identity of a request. AuthMiddleware puts it on
// the request context; it is gone once the token is revoked by logout.
type Session struct {
	Uid   bson.ObjectID
	Token *utils.AuthToken
}

type sessionKey struct{}

func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFrom(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*Session)
	return session, ok && session != nil
}
