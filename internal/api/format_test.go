package telegram

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
)

func field(s string) *entity.DecodedField {
	f := entity.DecodedField(s)
	return &f
}

func TestFormatResult(t *testing.T) {
	r := &entity.DecodeResult{
		StudentID: field("319052"),
		ExamCode:  field("042"),
		Answers:   map[int]string{1: "A", 2: "B", 3: "?", 4: "D", 5: "C", 6: "A"},
		Rotation:  180,
		Ambiguous: []string{"answer 4"},
	}

	want := "📝 Результат распознавания\n\n" +
		"🆔 Номер ученика: 319052\n" +
		"🔢 Код варианта: 042\n" +
		"🔄 Бланк повернут на 180°\n" +
		"\n✏️ Ответы:\n" +
		"1. A   2. B   3. ?   4. D   5. C\n" +
		"6. A\n" +
		"\n⚠️ Несколько отметок: answer 4"
	require.Equal(t, want, formatResult(r))
}

func TestFormatResult_MissingFields(t *testing.T) {
	text := formatResult(&entity.DecodeResult{})
	require.Contains(t, text, "Номер ученика: не распознан")
	require.Contains(t, text, "Код варианта: не распознан")
	require.Contains(t, text, "Ответы не распознаны")
	require.NotContains(t, text, "повернут")
}

func TestErrorMessage(t *testing.T) {
	require.Equal(t, msgNoOrientation, errorMessage(fmt.Errorf("decode: %w", entity.ErrNoOrientation)))
	require.Equal(t, msgDetectorDown, errorMessage(fmt.Errorf("%w: regions: timeout", entity.ErrDetector)))
	require.Equal(t, msgProcessingError, errorMessage(errors.New("boom")))
}
