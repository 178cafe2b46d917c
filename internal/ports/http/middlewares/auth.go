package middlewares

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/garageonwheels/gow-web/internal/domain/valueobject/role"
	"gitlab.com/garageonwheels/gow-web/pkg/ctxs"
	"gitlab.com/garageonwheels/gow-web/pkg/errorx"
	"gitlab.com/garageonwheels/gow-web/pkg/httpx"
)

const (
	// SessionCookie carries the signed session token issued at sign-in.
	SessionCookie = "gow_session"

	// LoginPath is where unauthenticated browser requests are sent.
	LoginPath = "/account/login"

	tokenIssuer  = "gow_web"
	tokenSubject = "user"
)

var (
	tracer = otel.Tracer("gow/internal/ports/http/middlewares")
	logger = otelslog.NewLogger("gow/internal/ports/http/middlewares")
)

type Middleware struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	secret     []byte
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Secret     []byte
	Errhandler *httpx.ErrorHandler
}

func NewMiddleware(args Args) *Middleware {
	m := &Middleware{
		tracer:     args.Tracer,
		logger:     args.Logger,
		secret:     args.Secret,
		errhandler: args.Errhandler,
	}

	if m.tracer == nil {
		m.tracer = tracer
	}
	if m.logger == nil {
		m.logger = logger
	}
	if len(m.secret) == 0 {
		panic("secret key is required for auth middleware")
	}
	if m.errhandler == nil {
		m.errhandler = httpx.NewErrorHandler()
	}
	return m
}

// Auth parses the session cookie and puts the signed-in user on the
// request context. Browser requests without a valid session are redirected
// to the login page; API-style requests get a 401 JSON envelope.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "AuthMiddleware")
		defer span.End()

		sessionCookie, err := r.Cookie(SessionCookie)
		if err != nil {
			m.reject(w, r, span, err, "missing session cookie")
			return
		}

		err = validation.Validate(sessionCookie.Value, validation.Required, validation.Length(1, 1000))
		if err != nil {
			m.reject(w, r, span, err, "invalid session cookie")
			return
		}

		token, err := jwt.Parse(sessionCookie.Value, func(t *jwt.Token) (any, error) {
			return m.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			m.reject(w, r, span, err, "failed to parse session token")
			return
		}
		if !token.Valid {
			m.reject(w, r, span, errors.New("invalid session token"), "invalid session token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			m.reject(w, r, span, errors.New("failed to parse session token claims"), "failed to parse session token claims")
			return
		}
		if claims["iss"] != tokenIssuer || claims["sub"] != tokenSubject {
			err = fmt.Errorf("invalid session token issuer or subject: iss=%v, sub=%v", claims["iss"], claims["sub"])
			m.reject(w, r, span, err, "invalid session token issuer or subject")
			return
		}
		userRole, ok := claims["user_role"].(string)
		if !ok || userRole == "" {
			m.reject(w, r, span, fmt.Errorf("role missing in session token claims: %T", claims["user_role"]), "role missing in session token claims")
			return
		}
		uid, ok := claims["uid"].(string)
		if !ok {
			m.reject(w, r, span, fmt.Errorf("user id missing in session token claims: %T", claims["uid"]), "user id missing in session token claims")
			return
		}
		expUnix, ok := claims["exp"].(float64)
		if !ok {
			m.reject(w, r, span, fmt.Errorf("expiration missing in session token claims: %T", claims["exp"]), "expiration missing in session token claims")
			return
		}
		if time.Unix(int64(expUnix), 0).Before(time.Now().UTC()) {
			m.reject(w, r, span, errors.New("session token is expired"), "session token is expired")
			return
		}
		userID, err := uuid.Parse(uid)
		if err != nil {
			m.reject(w, r, span, err, "failed to parse user id in session token claims")
			return
		}

		ctx = ctxs.WithUser(ctx, &ctxs.User{
			ID:   userID,
			Role: role.Role(userRole),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route to the given roles. It must run after Auth.
func (m *Middleware) RequireRoles(roles ...role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := m.tracer.Start(r.Context(), "RequireRolesMiddleware")
			defer span.End()

			u, ok := ctxs.UserFromCtx(r.Context())
			if !ok {
				m.reject(w, r, span, errors.New("user not found in context"), "user not found in context")
				return
			}
			if !slices.Contains(roles, u.Role) {
				err := errorx.NewForbidden().WithCause(fmt.Errorf("role %q is not allowed", u.Role))
				m.errhandler.HandleError(w, r, span, err, "role is not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) reject(w http.ResponseWriter, r *http.Request, span trace.Span, cause error, msg string) {
	if wantsHTML(r) {
		m.logger.DebugContext(r.Context(), "redirecting unauthenticated request to login", "path", r.URL.Path)
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}
	m.errhandler.HandleError(w, r, span, errorx.NewInvalidCredentials().WithCause(cause), msg)
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
