package dto

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// メール検証はワイヤ契約どおり「@を含むこと」のみで、usecase側で判定します。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
