package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"market_backend/internal/feature/account/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// sessionIDBytes はセッションIDの乱数バイト長を定義します（hexで64文字）。
const sessionIDBytes = 32

// AccountRepository はアカウントエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type AccountRepository interface {
	// Create は新しいアカウントをストレージに永続化します。
	// 同じ住所のアカウントが既に存在する場合、ErrAddressAlreadyExistsを返します。
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail は指定されたメールアドレスに一致するアカウントを取得します。
	// アカウントが存在しない場合、ErrAccountNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByID は指定されたIDに一致するアカウントを取得します。
	FindByID(ctx context.Context, id uint) (*entity.Account, error)
}

// TokenGenerator はセッショントークンの生成・検証を抽象化します。
// トークンはセッションIDを参照するだけで、有効性の判断は常にセッションストアで行います。
type TokenGenerator interface {
	// GenerateToken は指定されたセッションの署名済みトークンを生成します。
	GenerateToken(sessionID string, accountID uint) (string, error)

	// ParseToken はトークンの署名を検証し、参照先のセッションIDを返します。
	ParseToken(token string) (sessionID string, err error)
}

// accountUsecase は認証・アカウント管理のビジネスロジックを実装します。
type accountUsecase struct {
	accounts   AccountRepository
	sessions   SessionRepository
	tokens     TokenGenerator
	sessionTTL time.Duration
}

// NewAccountUsecase はaccountUsecaseの新しいインスタンスを生成します。
func NewAccountUsecase(accounts AccountRepository, sessions SessionRepository,
	tokens TokenGenerator, sessionTTL time.Duration) *accountUsecase {
	return &accountUsecase{
		accounts:   accounts,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// validateEmail はメールアドレスが"@"区切りを含むかチェックします。
// ワイヤ契約が規定する唯一のメール検証ルールです。
func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規アカウントを登録します。
// 必須フィールドの欠落、不正なメール、住所の重複はエラーになります。
func (u *accountUsecase) Register(ctx context.Context, name, password, email, address string) error {
	if name == "" || password == "" || email == "" || address == "" {
		return ErrMissingFields
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account := &entity.Account{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Address:  address,
	}
	// 住所の一意性はDBのユニークインデックスが担保する（同時登録でも一方のみ成功）
	return u.accounts.Create(ctx, account)
}

// Login はアカウントを認証し、成功時にセッションを発行して署名済みトークンを返します。
// メールアドレスはストアに触れる前に検証します。
// タイミング攻撃を防止するため、アカウントが存在しない場合でもbcrypt比較を実行します。
func (u *accountUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}

	// 提出されたメールアドレスでアカウントを検索
	account, err := u.accounts.FindByEmail(ctx, email)

	// アカウントが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = account.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// 未検出とパスワード不一致は内部的に区別するが、呼び出し側は同一表示にしてよい
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return "", ErrAccountNotFound
		}
		// ストレージ障害は認証失敗と混同しない
		return "", fmt.Errorf("account lookup failed: %w", err)
	}
	if compareErr != nil {
		return "", ErrInvalidCredentials
	}

	id, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	now := time.Now()
	session := &entity.Session{
		ID:        id,
		AccountID: account.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	token, err := u.tokens.GenerateToken(session.ID, account.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout はトークンが参照するセッションを失効させます。
// 冪等: 不正・未知・失効済みのトークンはエラーになりません。
func (u *accountUsecase) Logout(ctx context.Context, token string) error {
	sessionID, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := u.sessions.Revoke(ctx, sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// ValidateSession はトークンを検証し、有効であれば紐づくアカウントIDを返します。
// 署名検証後も必ずセッションストアを参照するため、ログアウト完了は即座に反映されます。
func (u *accountUsecase) ValidateSession(ctx context.Context, token string) (uint, error) {
	sessionID, err := u.tokens.ParseToken(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}
	if session.IsRevoked() {
		return 0, ErrSessionRevoked
	}
	if session.IsExpired() {
		return 0, ErrSessionExpired
	}
	return session.AccountID, nil
}

// newSessionID は暗号論的乱数から64文字のhexセッションIDを生成します。
func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
