package router

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/finboard/service-api-go/internal/auth"
	"github.com/finboard/service-api-go/internal/faq"
	"github.com/finboard/service-api-go/internal/finance"
	"github.com/finboard/service-api-go/internal/menu"
	"github.com/finboard/service-api-go/internal/notice"
	"github.com/finboard/service-api-go/internal/stock"
	"github.com/finboard/service-api-go/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware tags every request with a generated id and logs it at
// debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := utilities.NewRequestID()
			w.Header().Set("X-Request-Id", reqID)
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// CORSMiddleware allows the configured browser origins. Origins come from the
// CORS_ORIGINS env var (comma separated); the development front end is the
// default.
func CORSMiddleware() func(http.Handler) http.Handler {
	origins := []string{"http://localhost:3000"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
// It is intentionally simple and conservative so it works with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts every module's handlers on the standard library's
// http.ServeMux. Read routes are open; mutation routes on user-authored
// resources go through the auth middleware.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, authSvc *auth.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	guard := auth.NewMiddleware(authSvc)

	authHandler := auth.NewHandler(authSvc, logger)
	mux.HandleFunc("POST /api/v1/auth/signup/duplicate_id_check", authHandler.DuplicateIDCheck)
	mux.HandleFunc("POST /api/v1/auth/signup/duplicate_email_check", authHandler.DuplicateEmailCheck)
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh_token", authHandler.RefreshToken)
	mux.HandleFunc("GET /api/v1/auth/refresh_token", authHandler.RefreshToken)
	mux.HandleFunc("GET /api/v1/auth/{username}/MyInfo", guard.RequireAuth(authHandler.MyInfo))
	mux.HandleFunc("PUT /api/v1/auth/{username}/MyInfo", guard.RequireAuth(authHandler.UpdateMyInfo))
	mux.HandleFunc("PUT /api/v1/auth/{username}/pw", guard.RequireAuth(authHandler.UpdatePassword))
	mux.HandleFunc("POST /api/v1/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/forgot-password/auth-number", authHandler.ForgotPasswordAuthNumber)

	noticeHandler := notice.NewHandler(notice.NewService(db), logger)
	mux.HandleFunc("GET /api/v1/notices", noticeHandler.List)
	mux.HandleFunc("POST /api/v1/notices", guard.RequireAuth(noticeHandler.Create))
	mux.HandleFunc("GET /api/v1/notices/{notice_id}", noticeHandler.Get)
	mux.HandleFunc("PUT /api/v1/notices/{notice_id}", guard.RequireAuth(noticeHandler.Update))
	mux.HandleFunc("DELETE /api/v1/notices/{notice_id}", guard.RequireAuth(noticeHandler.Delete))
	mux.HandleFunc("PUT /api/v1/notices/{notice_id}/view-count", noticeHandler.IncrementViews)
	mux.HandleFunc("GET /api/v1/notices/{notice_id}/comments", noticeHandler.Comments)
	mux.HandleFunc("POST /api/v1/notices/{notice_id}/comment", guard.RequireAuth(noticeHandler.CreateComment))
	mux.HandleFunc("PUT /api/v1/notices/{notice_id}/comment/{comment_id}", guard.RequireAuth(noticeHandler.UpdateComment))
	mux.HandleFunc("DELETE /api/v1/notices/{notice_id}/comment/{comment_id}", guard.RequireAuth(noticeHandler.DeleteComment))
	mux.HandleFunc("GET /api/v1/notices/{notice_id}/vote", noticeHandler.Votes)
	mux.HandleFunc("POST /api/v1/notices/{notice_id}/vote", guard.RequireAuth(noticeHandler.Vote))

	stockHandler := stock.NewHandler(stock.NewService(db), logger)
	mux.HandleFunc("GET /api/v1/stock", stockHandler.Categories)
	mux.HandleFunc("GET /api/v1/stock/{stock}", stockHandler.List)
	mux.HandleFunc("POST /api/v1/stock/{stock}", guard.RequireAuth(stockHandler.Create))
	mux.HandleFunc("GET /api/v1/stock/{stock}/{stock_id}", stockHandler.Get)
	mux.HandleFunc("PUT /api/v1/stock/{stock}/{stock_id}", guard.RequireAuth(stockHandler.Update))
	mux.HandleFunc("DELETE /api/v1/stock/{stock}/{stock_id}", guard.RequireAuth(stockHandler.Delete))
	mux.HandleFunc("PUT /api/v1/stock/{stock}/{stock_id}/view-count", stockHandler.IncrementViews)
	mux.HandleFunc("GET /api/v1/stock/{stock}/{stock_id}/comments", stockHandler.Comments)
	mux.HandleFunc("POST /api/v1/stock/{stock}/{stock_id}/comment", guard.RequireAuth(stockHandler.CreateComment))
	mux.HandleFunc("PUT /api/v1/stock/{stock}/{stock_id}/comment/{comment_id}", guard.RequireAuth(stockHandler.UpdateComment))
	mux.HandleFunc("DELETE /api/v1/stock/{stock}/{stock_id}/comment/{comment_id}", guard.RequireAuth(stockHandler.DeleteComment))
	mux.HandleFunc("GET /api/v1/stock/{stock}/{stock_id}/vote", stockHandler.Votes)
	mux.HandleFunc("POST /api/v1/stock/{stock}/{stock_id}/vote", guard.RequireAuth(stockHandler.Vote))

	faqHandler := faq.NewHandler(faq.NewService(db), logger)
	mux.HandleFunc("GET /api/v1/faq", faqHandler.List)
	mux.HandleFunc("POST /api/v1/faq", faqHandler.Create)
	mux.HandleFunc("PUT /api/v1/faq/{faq_id}", faqHandler.Update)
	mux.HandleFunc("DELETE /api/v1/faq/{faq_id}", faqHandler.Delete)

	menuHandler := menu.NewHandler(menu.NewService(db), logger)
	mux.HandleFunc("GET /api/v1/menu", menuHandler.Tree)

	financeHandler := finance.NewHandler(finance.NewService(db), logger)
	mux.HandleFunc("GET /api/v1/finance/main", financeHandler.Main)

	handler := LoggingMiddleware(logger)(CORSMiddleware()(SecurityHeadersMiddleware()(mux)))
	return handler
}
