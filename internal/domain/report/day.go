// Package report contiene las agregaciones puras (filtrar, sumar, agrupar) sobre
// entregas y gastos. Ninguna función muta sus entradas ni hace I/O.
package report

import "time"

// Day trunca t a la medianoche de loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay compara dos instantes a granularidad de día en loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return Day(a, loc).Equal(Day(b, loc))
}

// inRange indica si t cae entre start y end (inclusive, por día). Límites nil no restringen.
func inRange(t time.Time, start, end *time.Time, loc *time.Location) bool {
	d := Day(t, loc)
	if start != nil && d.Before(Day(*start, loc)) {
		return false
	}
	if end != nil && d.After(Day(*end, loc)) {
		return false
	}
	return true
}
