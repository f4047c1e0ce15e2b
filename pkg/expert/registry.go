package expert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// FallbackInstruction frames the model when the selected label is not registered.
const FallbackInstruction = "あなたは有能なアシスタントです。"

const (
	LabelTutor = "A（Python家庭教師）"
	LabelCoach = "B（キャリア相談コーチ）"

	TutorInstruction = "あなたは親切で実践的なPython家庭教師です。" +
		"初心者にも分かるように、短い例を交えながら手順を明確に説明してください。" +
		"不確かな点は推測せず、確認すべき点を質問してください。"

	CoachInstruction = "あなたはキャリア相談のプロのコーチです。" +
		"相手の状況を整理し、選択肢を提示し、次の一歩が具体化するように支援してください。" +
		"決めつけず、必要に応じて前提確認の質問をしてください。"
)

var ErrEmptyLabel = errors.New("expert label is empty")

// Registry is an ordered, read-only label→instruction table.
// It is safe for concurrent use once constructed.
type Registry struct {
	entries []Entry
	byLabel map[string]string
}

// NewRegistry validates entries and keeps their order for display.
func NewRegistry(entries ...Entry) (*Registry, error) {
	byLabel := make(map[string]string, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Label) == "" {
			return nil, ErrEmptyLabel
		}
		if _, dup := byLabel[e.Label]; dup {
			return nil, fmt.Errorf("duplicate expert label %q", e.Label)
		}
		byLabel[e.Label] = e.Instruction
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return &Registry{entries: out, byLabel: byLabel}, nil
}

// Default returns the tutor/coach registry offered by the form.
func Default() *Registry {
	r, err := NewRegistry(
		Entry{Label: LabelTutor, Instruction: TutorInstruction},
		Entry{Label: LabelCoach, Instruction: CoachInstruction},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Labels returns registry labels in display order.
func (r *Registry) Labels() []string {
	return lo.Map(r.entries, func(e Entry, _ int) string { return e.Label })
}

// Entries returns a copy of the registry contents.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int { return len(r.entries) }

// Resolve never fails: labels outside the registry map to Unknown.
func (r *Registry) Resolve(label string) Role {
	if _, ok := r.byLabel[label]; ok {
		return Known(label)
	}
	return Unknown()
}

// Instruction returns FallbackInstruction for the unknown variant.
func (r *Registry) Instruction(role Role) string {
	if !role.IsKnown() {
		return FallbackInstruction
	}
	if s, ok := r.byLabel[role.Label()]; ok {
		return s
	}
	return FallbackInstruction
}

func (r *Registry) InstructionFor(label string) string {
	return r.Instruction(r.Resolve(label))
}
