package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var classCodePattern = regexp.MustCompile(`^(\d{1,2})([A-Z])$`)

// ClassCode kode kelas kanonik "<grade><section>", mis. "12A".
type ClassCode struct {
	Grade   int
	Section byte
}

func (c ClassCode) String() string { return fmt.Sprintf("%d%c", c.Grade, c.Section) }

type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid class code %q (want 1-2 digits followed by A-Z)", e.Input)
}

// ParseClassCode satu-satunya parser kode kelas. Input hanya di-trim; huruf
// section wajib uppercase. Rentang grade TIDAK dicek di sini (urusan kategori lab).
func ParseClassCode(s string) (ClassCode, error) {
	in := strings.TrimSpace(s)
	m := classCodePattern.FindStringSubmatch(in)
	if m == nil {
		return ClassCode{}, &ParseError{Input: s}
	}
	grade, _ := strconv.Atoi(m[1])
	return ClassCode{Grade: grade, Section: m[2][0]}, nil
}
