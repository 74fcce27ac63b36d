package graticule

import "fmt"

// Arc-second units.
const (
	ArcSecond int64 = 1
	ArcMinute       = 60 * ArcSecond
	ArcDegree       = 60 * ArcMinute
)

// DMS is the degrees/minutes/seconds decomposition of an absolute angle.
type DMS struct {
	Deg, Min, Sec int64
}

// ToDMS decomposes the magnitude of an angle given in arc-seconds.
// West and south positions that are not whole minutes therefore get unsigned
// seconds, so their ids and labels differ from encoders that take sec % 60 of
// the signed value.
func ToDMS(sec int64) DMS {
	a := sec
	if a < 0 {
		a = -a
	}
	return DMS{Deg: a / ArcDegree, Min: a / ArcMinute % 60, Sec: a % 60}
}

// LabelFunc formats a grid line position given in arc-seconds.
type LabelFunc func(sec int64) string

// LonID packs a meridian into a decimal id: 1 (west) or 2 (east) followed by
// DDD MM SS digits.
func LonID(sec int64) uint64 {
	return packID(sec, 10000000, 20000000)
}

// LatID packs a parallel into a decimal id: 3 (south) or 4 (north) followed by
// DDD MM SS digits.
func LatID(sec int64) uint64 {
	return packID(sec, 30000000, 40000000)
}

func packID(sec int64, neg, pos uint64) uint64 {
	d := ToDMS(sec)
	base := pos
	if sec < 0 {
		base = neg
	}
	return base + uint64(d.Deg*10000+d.Min*100+d.Sec)
}

// LonLabel formats a meridian as "E 000 00 00" / "W 000 00 00".
func LonLabel(sec int64) string {
	d := ToDMS(sec)
	h := "E"
	if sec < 0 {
		h = "W"
	}
	return fmt.Sprintf("%s %03d %02d %02d", h, d.Deg, d.Min, d.Sec)
}

// LatLabel formats a parallel as "N 00 00 00" / "S 00 00 00".
func LatLabel(sec int64) string {
	d := ToDMS(sec)
	h := "N"
	if sec < 0 {
		h = "S"
	}
	return fmt.Sprintf("%s %02d %02d %02d", h, d.Deg, d.Min, d.Sec)
}
