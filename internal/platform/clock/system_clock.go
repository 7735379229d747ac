package clock

import "time"

// SystemClock devolve o horário corrente no fuso civil configurado para o
// processo. As datas das sessões são comparadas sempre nesse fuso.
type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{loc: loc}
}

func (c SystemClock) Agora() time.Time {
	return time.Now().In(c.loc)
}
