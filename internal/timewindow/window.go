// Package timewindow は利用可能時間帯（"18-6" 等）の解析と判定を行う。
package timewindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
)

// ErrInvalidFormat は時間帯文字列の書式エラー
var ErrInvalidFormat = errors.New("invalid time window format")

const (
	secondsPerHour = 3600
	endOfDay       = 24*secondsPerHour - 1 // 23:59:59
)

// Window は1日の中の利用可能時間帯を表す。
// 開始・終了は0時からの経過秒で、両端を含む。
type Window struct {
	start   int
	end     int
	fullDay bool
}

// FullDay は終日有効なWindowを返す。
func FullDay() Window {
	return Window{start: 0, end: endOfDay, fullDay: true}
}

// Parse は "<start>-<end>" 形式の時間帯文字列を解析する。
// 各端は時のみ（0〜24、24は23:59:59）、"HH:MM"、または "h[:mm]AM/PM" を受け付ける。
// 空文字列は制限なし（終日）として扱う。
// 開始と終了が同じ場合も終日として扱う。
func Parse(s string) (Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FullDay(), nil
	}

	tokens := strings.Split(s, "-")
	if len(tokens) != 2 {
		return Window{}, invalid(s, "expected <start>-<end>")
	}

	start, err := parseToken(tokens[0])
	if err != nil {
		return Window{}, invalid(s, err.Error())
	}
	end, err := parseToken(tokens[1])
	if err != nil {
		return Window{}, invalid(s, err.Error())
	}

	return Window{start: start, end: end, fullDay: start == end}, nil
}

// Contains は指定時刻（tのロケーションにおける時刻）が時間帯に含まれるかを返す。
func (w Window) Contains(t time.Time) bool {
	if w.fullDay {
		return true
	}
	sec := t.Hour()*secondsPerHour + t.Minute()*60 + t.Second()
	if w.CrossesMidnight() {
		return sec >= w.start || sec <= w.end
	}
	return sec >= w.start && sec <= w.end
}

// CrossesMidnight は日付をまたぐ時間帯かどうかを返す。
func (w Window) CrossesMidnight() bool {
	return !w.fullDay && w.start > w.end
}

// String は "HH:MM:SS-HH:MM:SS" 形式の文字列を返す。
func (w Window) String() string {
	return clock(w.start) + "-" + clock(w.end)
}

// parseToken は時間帯の片端を0時からの経過秒に変換する。
func parseToken(tok string) (int, error) {
	tok = strings.ToUpper(strings.TrimSpace(tok))

	meridiem := ""
	if strings.HasSuffix(tok, "AM") || strings.HasSuffix(tok, "PM") {
		meridiem = tok[len(tok)-2:]
		tok = strings.TrimSpace(tok[:len(tok)-2])
	}

	hourPart, minutePart, hasMinute := strings.Cut(tok, ":")
	hour, err := atoiDigits(hourPart, 1, 2)
	if err != nil {
		return 0, fmt.Errorf("hour %q: %w", hourPart, err)
	}
	minute := 0
	if hasMinute {
		minute, err = atoiDigits(minutePart, 2, 2)
		if err != nil || minute > 59 {
			return 0, fmt.Errorf("minute %q out of range", minutePart)
		}
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("hour %d out of range 1-12", hour)
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
		return hour*secondsPerHour + minute*60, nil
	}

	if hour > 24 {
		return 0, fmt.Errorf("hour %d out of range 0-24", hour)
	}
	if hour == 24 {
		if minute != 0 {
			return 0, fmt.Errorf("24:%02d is not a valid time", minute)
		}
		return endOfDay, nil
	}
	return hour*secondsPerHour + minute*60, nil
}

// atoiDigits は桁数を制限して10進数字のみを数値に変換する。
func atoiDigits(s string, minLen, maxLen int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, errors.New("unexpected length")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errors.New("not a number")
		}
	}
	return strconv.Atoi(s)
}

func invalid(s, reason string) error {
	return apperr.NewValidationError("time_window", fmt.Sprintf("%q: %s", s, reason), ErrInvalidFormat)
}

func clock(sec int) string {
	return fmt.Sprintf("%02d:%02d:%02d", sec/secondsPerHour, sec%secondsPerHour/60, sec%60)
}
