package radius

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// ErrUnknownStatusType は未対応のAcct-Status-Typeを表す
var ErrUnknownStatusType = errors.New("unsupported Acct-Status-Type")

// Action はAcct-Status-Typeに対応する報告種別を返す。
func (a *AccountingAttributes) Action() (model.AccountingAction, error) {
	switch a.AcctStatusType {
	case AcctStatusTypeStart:
		return model.ActionStart, nil
	case AcctStatusTypeInterim:
		return model.ActionInterim, nil
	case AcctStatusTypeStop:
		return model.ActionStop, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownStatusType, a.AcctStatusType)
	}
}

// ToRequest は抽出済み属性を課金処理の入力形式に変換する。
func (a *AccountingAttributes) ToRequest(srcIP, traceID string, now time.Time) (*model.AccountingRequest, error) {
	action, err := a.Action()
	if err != nil {
		return nil, err
	}

	nasIP := a.NasIPAddress
	if nasIP == "" {
		nasIP = srcIP
	}

	return &model.AccountingRequest{
		EventID:         uuid.New().String(),
		SessionID:       a.AcctSessionID,
		UserName:        a.UserName,
		Action:          action,
		InputOctets:     int64(a.InputOctets),
		OutputOctets:    int64(a.OutputOctets),
		InputGigawords:  int64(a.InputGigawords),
		OutputGigawords: int64(a.OutputGigawords),
		SessionTime:     int64(a.SessionTime),
		FramedIP:        a.FramedIPAddress,
		NasIP:           nasIP,
		NasPortID:       a.NasPortID,
		NasIdentifier:   a.NasIdentifier,
		TraceID:         traceID,
		SrcIP:           srcIP,
		Timestamp:       now,
	}, nil
}
