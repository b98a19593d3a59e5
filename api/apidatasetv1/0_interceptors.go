package apidatasetv1

import (
	"context"
	"errors"

	"github.com/fulldump/farmgrid/service"
)

var ErrBadRequest = errors.New("bad request")

type servicerKey struct{}

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, servicerKey{}, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	s, _ := ctx.Value(servicerKey{}).(service.Servicer)
	return s
}
