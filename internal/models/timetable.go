package models

// Day is a school day of the week.
type Day string

// Period is a one-hour teaching period, formatted "H:MM-H:MM".
type Period string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

// Days lists the school days in calendar order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// Periods lists the daily teaching periods in chronological order.
var Periods = []Period{
	"8:00-9:00",
	"9:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
}

// Valid reports whether d is one of Days.
func (d Day) Valid() bool {
	return d.Index() >= 0
}

// Index returns the position of d in Days or -1.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of Periods.
func (p Period) Valid() bool {
	return p.Index() >= 0
}

// Index returns the position of p in Periods or -1.
func (p Period) Index() int {
	for i, period := range Periods {
		if period == p {
			return i
		}
	}
	return -1
}
