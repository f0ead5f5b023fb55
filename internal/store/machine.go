package store

import "math/rand"

// writeMachine は楽観ロック書き込みの試行状態を保持する。
type writeMachine struct {
	attempt     int   // 実行済み試行回数
	maxAttempts int   // 試行上限
	expected    int64 // 書き込み条件とするストア上のバージョン
	lastSeen    int64 // 直近に観測したストア上のバージョン
	lastErr     error
}

func newWriteMachine(maxAttempts int, expected int64) *writeMachine {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &writeMachine{maxAttempts: maxAttempts, expected: expected, lastSeen: expected}
}

// next は次の試行に進めるかを返し、進める場合は試行回数を加算する。
func (m *writeMachine) next() bool {
	if m.exhausted() {
		return false
	}
	m.attempt++
	return true
}

// observe は試行結果を記録する。
func (m *writeMachine) observe(storedVersion int64, err error) {
	m.lastSeen = storedVersion
	m.lastErr = err
}

func (m *writeMachine) exhausted() bool {
	return m.attempt >= m.maxAttempts
}

func (m *writeMachine) rng() float64 {
	return rand.Float64()
}
