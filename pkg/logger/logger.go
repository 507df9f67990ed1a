// Package logger define el logger estructurado de la aplicación sobre zerolog.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger raíz.
type Config struct {
	Env     string    // development escribe consola legible; cualquier otro valor, JSON
	Level   string    // trace, debug, info, warn, error; vacío resuelve según Env
	Service string    // nombre de la aplicación, estampado en cada línea si no está vacío
	Output  io.Writer // destino de las líneas, por defecto os.Stdout
}

// Logger envuelve zerolog para inyectarlo en handlers y casos de uso.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz y redirige el logger global de zerolog
// para que las librerías que lo usan escriban por la misma salida.
func New(cfg Config) *Logger {
	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(w).Level(level(cfg)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func level(cfg Config) zerolog.Level {
	if cfg.Level == "" {
		if cfg.Env == "development" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component deriva un sublogger con el campo component fijo, para
// distinguir las líneas de cada capa (http, auth, whatsapp...).
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Tenant deriva un sublogger atado al slug del restaurante.
func (l *Logger) Tenant(restaurantID string) *Logger {
	return &Logger{zl: l.zl.With().Str("restaurant_id", restaurantID).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
