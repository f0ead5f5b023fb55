package radius

import (
	"encoding/binary"
	"errors"
	"net"
	"strconv"

	"layeh.com/radius"
)

// RADIUS属性タイプ定数（RFC 2865/2866/2869）
const (
	AttrTypeUserName        = 1
	AttrTypeNASIPAddress    = 4
	AttrTypeNASPort         = 5
	AttrTypeFramedIPAddr    = 8
	AttrTypeNASIdentifier   = 32
	AttrTypeProxyState      = 33
	AttrTypeAcctStatusType  = 40
	AttrTypeAcctInputOct    = 42
	AttrTypeAcctOutputOct   = 43
	AttrTypeAcctSessionID   = 44
	AttrTypeAcctSessionTime = 46
	AttrTypeAcctInputGiga   = 52
	AttrTypeAcctOutputGiga  = 53
	AttrTypeNASPortID       = 87
)

// 属性抽出エラー
var (
	ErrMissingStatusType = errors.New("missing Acct-Status-Type")
	ErrMissingSessionID  = errors.New("missing Acct-Session-Id")
	ErrMissingUserName   = errors.New("missing User-Name")
)

// ExtractAccountingAttributes はAccounting-Requestから必要な属性を抽出する。
func ExtractAccountingAttributes(packet *radius.Packet) (*AccountingAttributes, error) {
	attrs := &AccountingAttributes{}

	// Acct-Status-Type（必須）
	statusTypeAttr := packet.Get(radius.Type(AttrTypeAcctStatusType))
	if len(statusTypeAttr) < 4 {
		return nil, ErrMissingStatusType
	}
	attrs.AcctStatusType = binary.BigEndian.Uint32(statusTypeAttr)

	// Acct-Session-Id（必須）
	sessionIDAttr := packet.Get(radius.Type(AttrTypeAcctSessionID))
	if len(sessionIDAttr) == 0 {
		return nil, ErrMissingSessionID
	}
	attrs.AcctSessionID = string(sessionIDAttr)

	// User-Name（必須、課金対象の加入者を特定する）
	userNameAttr := packet.Get(radius.Type(AttrTypeUserName))
	if len(userNameAttr) == 0 {
		return nil, ErrMissingUserName
	}
	attrs.UserName = string(userNameAttr)

	attrs.NasIPAddress = ipv4Attr(packet, AttrTypeNASIPAddress)
	attrs.FramedIPAddress = ipv4Attr(packet, AttrTypeFramedIPAddr)
	attrs.NasIdentifier = string(packet.Get(radius.Type(AttrTypeNASIdentifier)))

	// NAS-Port-Id優先、なければNAS-Port
	if portID := packet.Get(radius.Type(AttrTypeNASPortID)); len(portID) > 0 {
		attrs.NasPortID = string(portID)
	} else if port, ok := uint32Attr(packet, AttrTypeNASPort); ok {
		attrs.NasPortID = strconv.FormatUint(uint64(port), 10)
	}

	attrs.InputOctets, _ = uint32Attr(packet, AttrTypeAcctInputOct)
	attrs.OutputOctets, _ = uint32Attr(packet, AttrTypeAcctOutputOct)
	attrs.InputGigawords, _ = uint32Attr(packet, AttrTypeAcctInputGiga)
	attrs.OutputGigawords, _ = uint32Attr(packet, AttrTypeAcctOutputGiga)
	attrs.SessionTime, _ = uint32Attr(packet, AttrTypeAcctSessionTime)

	// Proxy-State（複数可）
	attrs.ProxyStates = proxyStates(packet)

	return attrs, nil
}

// uint32Attr は4オクテット整数属性を取得する
func uint32Attr(packet *radius.Packet, typ int) (uint32, bool) {
	v := packet.Get(radius.Type(typ))
	if len(v) < 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(v), true
}

// ipv4Attr はIPv4アドレス属性を文字列で取得する
func ipv4Attr(packet *radius.Packet, typ int) string {
	v := packet.Get(radius.Type(typ))
	if len(v) != 4 {
		return ""
	}
	return net.IP(v).String()
}

// proxyStates はパケットからProxy-State属性を出現順に抽出する
func proxyStates(packet *radius.Packet) [][]byte {
	var states [][]byte
	for _, attr := range packet.Attributes {
		if attr.Type == radius.Type(AttrTypeProxyState) {
			states = append(states, attr.Attribute)
		}
	}
	return states
}
