// Package dto はaccountフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/registerエンドポイントのリクエストボディを表します。
// フィールドの業務検証（必須・メール形式・住所重複）はusecase側で行うため、
// ここではワイヤ形状のみを定義します。
type RegisterReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}
