package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
)

const (
	cdrEventVersion   = "1.0"
	cdrSource         = "AAA-Service"
	cdrNasPortType    = "Async"
	cdrFramedProtocol = "PPP"
	cdrServiceType    = "Framed-User"
)

// CDRKind はCDRの種別。
type CDRKind int

// CDR種別
const (
	CDRStart CDRKind = iota
	CDRInterim
	CDRStop
)

// eventType はCDRKindに対応するイベント種別を返す。
func (k CDRKind) eventType() string {
	switch k {
	case CDRStart:
		return EventTypeAccountingStart
	case CDRInterim:
		return EventTypeAccountingInterim
	default:
		return EventTypeAccountingStop
	}
}

// statusType はCDRKindに対応するAcct-Status-Type表記を返す。
func (k CDRKind) statusType() string {
	switch k {
	case CDRStart:
		return "Start"
	case CDRInterim:
		return "Interim-Update"
	default:
		return "Stop"
	}
}

// UsageReport はCDR生成に必要なアカウンティング報告の内容。
type UsageReport struct {
	UserName        string
	SessionID       string
	NasIP           string
	NasPortID       string
	NasIdentifier   string
	FramedIP        string
	SessionTime     int64
	InputOctets     int64
	OutputOctets    int64
	InputGigawords  int64
	OutputGigawords int64
}

// CDREvent はアカウンティングのCDR。
type CDREvent struct {
	EventID        string     `json:"eventId"`
	EventType      string     `json:"eventType"`
	EventVersion   string     `json:"eventVersion"`
	EventTimestamp time.Time  `json:"eventTimestamp"`
	Source         string     `json:"source"`
	Payload        CDRPayload `json:"payload"`
}

// CDRPayload はCDRの本体。
type CDRPayload struct {
	Session    CDRSession    `json:"session"`
	User       CDRUser       `json:"user"`
	Network    CDRNetwork    `json:"network"`
	Accounting CDRAccounting `json:"accounting"`
}

// CDRSession はセッション情報。
type CDRSession struct {
	SessionID     string    `json:"sessionId"`
	SessionTime   string    `json:"sessionTime"`
	StartTime     time.Time `json:"startTime"`
	UpdateTime    time.Time `json:"updateTime"`
	NasIdentifier string    `json:"nasIdentifier"`
	NasIPAddress  string    `json:"nasIpAddress"`
	NasPort       string    `json:"nasPort"`
	NasPortType   string    `json:"nasPortType"`
}

// CDRUser は利用者情報。
type CDRUser struct {
	UserName string `json:"userName"`
}

// CDRNetwork はネットワーク情報。
type CDRNetwork struct {
	FramedIPAddress string `json:"framedIpAddress"`
	FramedProtocol  string `json:"framedProtocol"`
	ServiceType     string `json:"serviceType"`
	CalledStationID string `json:"calledStationId"`
}

// CDRAccounting は課金情報。
type CDRAccounting struct {
	AcctStatusType      string `json:"acctStatusType"`
	AcctSessionTime     int64  `json:"acctSessionTime"`
	AcctInputOctets     int64  `json:"acctInputOctets"`
	AcctOutputOctets    int64  `json:"acctOutputOctets"`
	AcctInputPackets    int64  `json:"acctInputPackets"`
	AcctOutputPackets   int64  `json:"acctOutputPackets"`
	AcctInputGigawords  int64  `json:"acctInputGigawords"`
	AcctOutputGigawords int64  `json:"acctOutputGigawords"`
}

// BuildCDR はアカウンティング報告とセッションからCDRを生成する。
// Startの場合、セッション時間とオクテット数は0とする。
func BuildCDR(kind CDRKind, r *UsageReport, sess session.Session, now time.Time) *CDREvent {
	var sessionTime, in, out, inGW, outGW int64
	if kind != CDRStart {
		sessionTime = r.SessionTime
		in = TotalOctets(r.InputOctets, r.InputGigawords)
		out = TotalOctets(r.OutputOctets, r.OutputGigawords)
		inGW = r.InputGigawords
		outGW = r.OutputGigawords
	}

	nasIdentifier := r.NasIdentifier
	if nasIdentifier == "" {
		nasIdentifier = r.NasIP
	}

	return &CDREvent{
		EventID:        uuid.New().String(),
		EventType:      kind.eventType(),
		EventVersion:   cdrEventVersion,
		EventTimestamp: now,
		Source:         cdrSource,
		Payload: CDRPayload{
			Session: CDRSession{
				SessionID:     r.SessionID,
				SessionTime:   strconv.FormatInt(sessionTime, 10),
				StartTime:     sess.StartTime,
				UpdateTime:    now,
				NasIdentifier: nasIdentifier,
				NasIPAddress:  r.NasIP,
				NasPort:       r.NasPortID,
				NasPortType:   cdrNasPortType,
			},
			User: CDRUser{UserName: r.UserName},
			Network: CDRNetwork{
				FramedIPAddress: r.FramedIP,
				FramedProtocol:  cdrFramedProtocol,
				ServiceType:     cdrServiceType,
				CalledStationID: r.NasIP,
			},
			Accounting: CDRAccounting{
				AcctStatusType:      kind.statusType(),
				AcctSessionTime:     sessionTime,
				AcctInputOctets:     in,
				AcctOutputOctets:    out,
				AcctInputGigawords:  inGW,
				AcctOutputGigawords: outGW,
			},
		},
	}
}

// TotalOctets はオクテット数とGigawordsから総オクテット数を求める。
func TotalOctets(octets, gigawords int64) int64 {
	return gigawords<<32 + octets
}
