package identity

// AnonymousUserID 未登录身份的占位 id，仅用于落库展示，不参与台账
const AnonymousUserID = "anonymous"

// Identity 请求身份：要么是带 id 的登录用户，要么是匿名
// 显式区分，避免把所有匿名请求当成同一个用户记账
type Identity struct {
	UserID        string
	Authenticated bool
}

func Anonymous() Identity {
	return Identity{UserID: AnonymousUserID}
}

func Authenticated(userID string) Identity {
	return Identity{UserID: userID, Authenticated: true}
}
