package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Day string

const (
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
)

// Weekdays urutan kanonik hari sekolah.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

func (d Day) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// Index posisi hari di Weekdays, -1 bila bukan hari sekolah.
func (d Day) Index() int {
	for i, w := range Weekdays {
		if d == w {
			return i
		}
	}
	return -1
}

// ParseDay menerima token hari (case-insensitive).
func ParseDay(s string) (Day, bool) {
	d := Day(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.Valid()
}

// DayOf hari sekolah dari tanggal; false untuk Sabtu/Minggu.
func DayOf(t time.Time) (Day, bool) {
	switch t.Weekday() {
	case time.Monday:
		return Monday, true
	case time.Tuesday:
		return Tuesday, true
	case time.Wednesday:
		return Wednesday, true
	case time.Thursday:
		return Thursday, true
	case time.Friday:
		return Friday, true
	}
	return "", false
}

// SlotKey format kunci grid "<DAY>-<period>" (format wire, jangan diubah).
func SlotKey(d Day, period int) string {
	return fmt.Sprintf("%s-%d", d, period)
}

// ParseSlotKey memecah "<DAY>-<period>". Token hari harus persis uppercase.
func ParseSlotKey(key string, maxPeriod int) (Day, int, bool) {
	i := strings.LastIndexByte(key, '-')
	if i <= 0 || i == len(key)-1 {
		return "", 0, false
	}
	d := Day(key[:i])
	if !d.Valid() {
		return "", 0, false
	}
	p, err := strconv.Atoi(key[i+1:])
	if err != nil || p < 1 || p > maxPeriod {
		return "", 0, false
	}
	// "MONDAY-03" atau "MONDAY-+3" bukan format wire.
	if key != SlotKey(d, p) {
		return "", 0, false
	}
	return d, p, true
}
