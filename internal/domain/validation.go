package domain

import "regexp"

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// Пароль: 8-20, >=1 заглавная, >=1 строчная, >=1 цифра, >=1 спецсимвол
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
	symRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

func ValidPassword(s string) bool {
	if len(s) < 8 || len(s) > 20 {
		return false
	}
	return upperRe.MatchString(s) && lowerRe.MatchString(s) && digitRe.MatchString(s) && symRe.MatchString(s)
}

// Никнейм: 1-10 символов без пробелов (ограничение колонки в БД)
func ValidNickname(s string) bool {
	if s == "" || len([]rune(s)) > 10 {
		return false
	}
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			return false
		}
	}
	return true
}
