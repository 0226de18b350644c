package production

import (
	"fmt"
	"time"
)

// Semester semestre calendario: 1 = enero-junio, 2 = julio-diciembre.
type Semester struct {
	Year int
	Half int
}

// Label formato "{año}-{1|2}".
func (s Semester) Label() string {
	return fmt.Sprintf("%d-%d", s.Year, s.Half)
}

// Range límites del semestre: From es el primer instante y To el último
// (23:59:59.999999999 del 30 de junio o del 31 de diciembre).
func (s Semester) Range(loc *time.Location) (from, to time.Time) {
	startMonth := time.January
	if s.Half == 2 {
		startMonth = time.July
	}
	from = time.Date(s.Year, startMonth, 1, 0, 0, 0, 0, loc)
	to = from.AddDate(0, 6, 0).Add(-time.Nanosecond)
	return from, to
}

// SemesterOf semestre al que pertenece t.
func SemesterOf(t time.Time) Semester {
	half := 1
	if t.Month() >= time.July {
		half = 2
	}
	return Semester{Year: t.Year(), Half: half}
}

// SemestersFor los seis semestres del año indicado y los dos anteriores,
// del más antiguo al más reciente.
func SemestersFor(year int) []Semester {
	out := make([]Semester, 0, 6)
	for y := year - 2; y <= year; y++ {
		out = append(out, Semester{Year: y, Half: 1}, Semester{Year: y, Half: 2})
	}
	return out
}
