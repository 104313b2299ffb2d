package calendar

import "time"

// Holidays returns the Norwegian public holidays of year keyed by day
func Holidays(year int) map[Day]string {
	holidays := map[Day]string{
		NewDay(year, time.January, 1):   "Nyttårsdag",
		NewDay(year, time.May, 1):       "Offentlig høytidsdag",
		NewDay(year, time.May, 17):      "Grunnlovsdag",
		NewDay(year, time.December, 25): "1. juledag",
		NewDay(year, time.December, 26): "2. juledag",
	}

	easter := Easter(year)
	movable := []struct {
		offset int
		name   string
	}{
		{-7, "Palmesøndag"},
		{-3, "Skjærtorsdag"},
		{-2, "Langfredag"},
		{0, "1. påskedag"},
		{1, "2. påskedag"},
		{39, "Kristi himmelfartsdag"},
		{49, "1. pinsedag"},
		{50, "2. pinsedag"},
	}
	for _, h := range movable {
		holidays[easter.AddDays(h.offset)] = h.name
	}

	return holidays
}

// Easter returns Easter Sunday (Meeus/Jones/Butcher)
func Easter(year int) Day {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return NewDay(year, time.Month(month), day)
}
