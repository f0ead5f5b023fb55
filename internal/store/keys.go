package store

// Valkeyキープレフィックス
const (
	KeyPrefixUser     = "user:"      // 加入者・グループ状態
	KeyPrefixAcctSeen = "acct:seen:" // Stop済みマーカー
	KeyPrefixClient   = "client:"    // RADIUSクライアント設定
)

// UserKey は加入者（またはグループ）状態のキーを返す。
func UserKey(userName string) string {
	return KeyPrefixUser + userName
}

// ClientKey はRADIUSクライアント（NAS）設定のキーを返す。
func ClientKey(ip string) string {
	return KeyPrefixClient + ip
}

// クライアント設定ハッシュのフィールド
const clientFieldSecret = "secret"
