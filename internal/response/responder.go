package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"booktok/internal/validator"
)

const (
	contentTypeJson   = "application/json; charset=utf-8"
	contentTypeJsonLD = "application/ld+json; charset=utf-8"
	contentTypeXml    = "application/xml; charset=utf-8"
	contentTypeText   = "text/plain; charset=utf-8"
)

type Responder struct {
	DebugMode bool
}

// RespondAndLogError will respond with generic error code (500) and log with slog.LevelError level
func (rr *Responder) RespondAndLogError(w http.ResponseWriter, ctx context.Context, err error) {
	errId := uuid.NewString()
	log(ctx, slog.LevelError, err.Error(), slog.String("err_id", errId))
	rr.renderError(w, ctx, http.StatusInternalServerError, err.Error(), errId)
}

func (rr *Responder) RespondAndLogCustom(w http.ResponseWriter, ctx context.Context, err error, lvl slog.Level, status int) {
	errId := uuid.NewString()
	log(ctx, lvl, err.Error(), slog.String("err_id", errId))
	rr.renderError(w, ctx, status, err.Error(), errId)
}

// LogError records an error that does not change the response.
func (rr *Responder) LogError(ctx context.Context, err error) {
	log(ctx, slog.LevelError, err.Error(), slog.String("err_id", uuid.NewString()))
}

// RespondNotFound tells the client which kind of thing is missing, nothing is logged.
func (rr *Responder) RespondNotFound(w http.ResponseWriter, ctx context.Context, what string) {
	rr.send(w, ctx, http.StatusNotFound, contentTypeJson, map[string]any{"error": what + " not found"})
}

// RespondBadRequest reports a malformed or invalid request body, per field when validation failed.
func (rr *Responder) RespondBadRequest(w http.ResponseWriter, ctx context.Context, err error) {
	data := map[string]any{"error": "invalid request"}

	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		data["fields"] = ve.Fields()
	} else if rr.DebugMode {
		data["error"] = capitalize(err.Error())
	}

	log(ctx, slog.LevelDebug, "Bad request: "+err.Error())
	rr.send(w, ctx, http.StatusBadRequest, contentTypeJson, data)
}

func (rr *Responder) SendJson(w http.ResponseWriter, ctx context.Context, data any) {
	rr.send(w, ctx, http.StatusOK, contentTypeJson, data)
}

func (rr *Responder) SendJsonStatus(w http.ResponseWriter, ctx context.Context, status int, data any) {
	rr.send(w, ctx, status, contentTypeJson, data)
}

// SendJsonLD writes an already escaped JSON-LD document.
func (rr *Responder) SendJsonLD(w http.ResponseWriter, bs []byte) {
	write(w, http.StatusOK, contentTypeJsonLD, bs)
}

func (rr *Responder) SendXml(w http.ResponseWriter, contentType string, bs []byte) {
	if contentType == "" {
		contentType = contentTypeXml
	}
	write(w, http.StatusOK, contentType, bs)
}

func (rr *Responder) SendText(w http.ResponseWriter, text string) {
	write(w, http.StatusOK, contentTypeText, []byte(text))
}

func (rr *Responder) send(w http.ResponseWriter, ctx context.Context, status int, contentType string, data any) {
	bs, err := json.Marshal(data)
	if err != nil {
		rr.RespondAndLogError(w, ctx, err)
		return
	}

	write(w, status, contentType, bs)
}

func (rr *Responder) renderError(w http.ResponseWriter, ctx context.Context, status int, message, errId string) {
	data := map[string]any{"error_id": errId}

	if rr.DebugMode {
		data["error"] = capitalize(message)
	} else {
		data["error"] = "Unknown error occurred while processing your request. Error ID: " + errId
	}

	bs, err := json.Marshal(data)
	contentType := contentTypeJson
	if err != nil {
		log(ctx, slog.LevelError, "cannot marshall error response body: "+err.Error())
		contentType = contentTypeText
		bs = []byte("unknown error")
	}

	write(w, status, contentType, bs)
}

func write(w http.ResponseWriter, status int, contentType string, bs []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}

func capitalize(message string) string {
	r, s := utf8.DecodeRuneInString(message)
	if r == utf8.RuneError {
		return message
	}
	return string(unicode.ToUpper(r)) + message[s:]
}

// Needed because it skips one more frame item than the slog.Log
func log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	l := slog.Default()

	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, this function's caller]
	runtime.Callers(3, pcs[:])
	pc = pcs[0]

	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
