package notice

// 画面に一度だけ出す通知の種別
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Notice struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// リクエスト1回分の通知を貯める片方向バッファ。
// この層は積むだけで、描画は表示側の仕事。
type Buffer struct {
	notices []Notice
}

func (b *Buffer) Push(kind Kind, text string) {
	b.notices = append(b.notices, Notice{Kind: kind, Text: text})
}

func (b *Buffer) Info(text string)    { b.Push(KindInfo, text) }
func (b *Buffer) Success(text string) { b.Push(KindSuccess, text) }
func (b *Buffer) Warning(text string) { b.Push(KindWarning, text) }
func (b *Buffer) Error(text string)   { b.Push(KindError, text) }

func (b *Buffer) List() []Notice {
	if b.notices == nil {
		return []Notice{}
	}
	return b.notices
}
