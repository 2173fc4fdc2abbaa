package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/deliveryops-api/internal/application/dto"
	"github.com/jhoicas/deliveryops-api/internal/application/ports"
	"github.com/jhoicas/deliveryops-api/internal/domain"
)

// Clock reloj y zona horaria usados para fechas "de hoy" y para truncar a medianoche.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock reloj real en la zona indicada (UTC si loc es nil).
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// Loc devuelve la zona configurada o UTC.
func (c Clock) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Time hora actual en la zona configurada.
func (c Clock) Time() time.Time {
	if c.Now == nil {
		return time.Now().In(c.Loc())
	}
	return c.Now().In(c.Loc())
}

// Today medianoche de hoy.
func (c Clock) Today() time.Time {
	t := c.Time()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Loc())
}

// ParseDate interpreta YYYY-MM-DD como medianoche local; vacío devuelve hoy.
func (c Clock) ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return c.Today(), nil
	}
	t, err := time.ParseInLocation(dto.DateLayout, s, c.Loc())
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Message: "fecha inválida, use YYYY-MM-DD"}
	}
	return t, nil
}

// FormatDate fecha como YYYY-MM-DD en la zona configurada.
func (c Clock) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(c.Loc()).Format(dto.DateLayout)
}

// NewID genera un identificador UUIDv7 (ordenado por tiempo).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Notify envía el aviso si hay notificador configurado.
func Notify(ctx context.Context, n ports.Notifier, message string, kind ports.NotifyKind) {
	if n == nil {
		return
	}
	n.Notify(ctx, message, kind)
}

// Fail notifica los errores de validación al usuario y devuelve err sin cambios.
func Fail(ctx context.Context, n ports.Notifier, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		msg := "Por favor, preencha os campos obrigatórios"
		if verr.Field != "" {
			msg += ": " + verr.Field
		}
		Notify(ctx, n, msg, ports.NotifyError)
	case errors.Is(err, domain.ErrSignatureRequired):
		Notify(ctx, n, "Por favor, colete a assinatura do cliente", ports.NotifyError)
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidImage):
		Notify(ctx, n, err.Error(), ports.NotifyError)
	}
	return err
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// RequireFields devuelve el primer campo obligatorio vacío (pares nombre, valor).
func RequireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if blank(pairs[i+1]) {
			return domain.Required(pairs[i])
		}
	}
	return nil
}

// sortByName ordena por nombre según el orden alfabético pt-BR (acentos incluidos).
func sortByName[T any](items []T, name func(T) string) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}
