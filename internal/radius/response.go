package radius

import (
	"layeh.com/radius"
)

// BuildAccountingResponse はAccounting-Responseパケットを生成する（RFC 2866）。
// Proxy-Stateは受信順にエコーバックする。
// Response Authenticatorはgo-radiusライブラリのEncode()が自動計算する。
func BuildAccountingResponse(request *radius.Packet, states [][]byte) *radius.Packet {
	response := request.Response(radius.CodeAccountingResponse)
	for _, state := range states {
		response.Add(radius.Type(AttrTypeProxyState), state)
	}
	return response
}
