package controller

import "context"

type ctxKey string

const peerIDCtxKey ctxKey = "peer_id"

func ctxWithPeerID(ctx context.Context, peerID string) context.Context {
	return context.WithValue(ctx, peerIDCtxKey, peerID)
}

func peerIDFromCtx(ctx context.Context) string {
	peerID, _ := ctx.Value(peerIDCtxKey).(string)
	return peerID
}
