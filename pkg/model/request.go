package model

import "time"

// AccountingAction はアカウンティング報告の種別。
type AccountingAction string

// アカウンティング報告の種別
const (
	ActionStart   AccountingAction = "Start"
	ActionInterim AccountingAction = "Interim-Update"
	ActionStop    AccountingAction = "Stop"
)

// gigawordSize は1 Gigawordのオクテット数
const gigawordSize = 1 << 32

// AccountingRequest は1件のアカウンティング報告を表す。
// RADIUS受信およびStream受信の両方からこの形式に変換される。
type AccountingRequest struct {
	EventID         string           `json:"eventId"`
	SessionID       string           `json:"sessionId"`
	UserName        string           `json:"username"`
	Action          AccountingAction `json:"actionType"`
	InputOctets     int64            `json:"inputOctets"`
	OutputOctets    int64            `json:"outputOctets"`
	InputGigawords  int64            `json:"inputGigaWords"`
	OutputGigawords int64            `json:"outputGigaWords"`
	SessionTime     int64            `json:"sessionTime"`
	FramedIP        string           `json:"framedIPAddress"`
	NasIP           string           `json:"nasIP"`
	NasPortID       string           `json:"nasPortId"`
	NasIdentifier   string           `json:"nasIdentifier,omitempty"`
	TraceID         string           `json:"traceId,omitempty"`
	SrcIP           string           `json:"srcIP,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// TotalUsage は入出力を合算した累計使用量（octets）を返す。
func (r *AccountingRequest) TotalUsage() int64 {
	return (r.InputGigawords+r.OutputGigawords)*gigawordSize + r.InputOctets + r.OutputOctets
}
