package answer

import (
	"errors"
	"fmt"
)

// User-facing messages. MissingCredentialMessage and EmptyInputMessage are
// part of the form's contract and must not change.
const (
	MissingCredentialMessage = "OPENAI_API_KEY が見つかりません。StreamlitのSecretsまたは環境変数に設定してください。"
	EmptyInputMessage        = "入力テキストが空です。何か入力してから送信してください。"
	TimeoutMessage           = "LLMからの応答がタイムアウトしました。時間をおいて再度お試しください。"
	CanceledMessage          = "問い合わせが中断されました。"
	NetworkMessage           = "LLMに接続できませんでした。ネットワーク接続を確認して再度お試しください。"
	ProviderMessage          = "LLMプロバイダがエラーを返しました。APIキーや利用状況を確認してください。"
	InternalMessage          = "回答の生成中に予期しないエラーが発生しました。"
)

var (
	ErrCredentialMissing = errors.New("api credential is not configured")
	ErrEmptyInput        = errors.New("input text is empty")
)

// Kind classifies why an ask produced no answer.
type Kind int

const (
	KindInternal Kind = iota
	KindCredentialMissing
	KindEmptyInput
	KindTimeout
	KindCanceled
	KindNetwork
	KindProvider
)

func (k Kind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential_missing"
	case KindEmptyInput:
		return "empty_input"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	case KindNetwork:
		return "network"
	case KindProvider:
		return "provider"
	default:
		return "internal"
	}
}

// Error is the single structured failure returned by Ask.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindCredentialMissing:
		return MissingCredentialMessage
	case KindEmptyInput:
		return EmptyInputMessage
	case KindTimeout:
		return TimeoutMessage
	case KindCanceled:
		return CanceledMessage
	case KindNetwork:
		return NetworkMessage
	case KindProvider:
		return ProviderMessage
	default:
		return InternalMessage
	}
}

// KindOf returns KindInternal for errors that are not *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// UserMessage renders any error returned by the service for display.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return InternalMessage
}
