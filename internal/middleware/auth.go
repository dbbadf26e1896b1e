package middleware

import (
	"casino_engine/internal/service"
	"casino_engine/pkg/resp"
	"casino_engine/pkg/token"
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// Principal - счёт, от имени которого пришёл запрос
type Principal struct {
	AccountID int64
	Name      string
}

// Auth проверяет bearer-токен и заводит счёт при первом обращении
func Auth(secretKey []byte, ledger service.LedgerService, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				unauthorized(w)
				return
			}
			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				log.WithError(err).Debug("rejected token")
				unauthorized(w)
				return
			}
			id, err := token.AccountID(claims)
			if err != nil {
				unauthorized(w)
				return
			}

			if _, err := ledger.GetOrCreateAccount(r.Context(), id, claims.Name); err != nil {
				resp.WriteError(w, err)
				return
			}

			p := Principal{AccountID: id, Name: claims.Name}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// AccountID - ID счёта из контекста. 0, если запрос не прошёл Auth
func AccountID(ctx context.Context) int64 {
	p, _ := PrincipalFromContext(ctx)
	return p.AccountID
}

func unauthorized(w http.ResponseWriter) {
	resp.WriteJSONResponse(w, http.StatusUnauthorized, resp.ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
}
