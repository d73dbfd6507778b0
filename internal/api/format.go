package telegram

import (
	"fmt"
	"sort"
	"strings"

	"omr-bot/internal/domain/entity"
)

// answersPerLine сколько ответов печатается в одной строке сообщения
const answersPerLine = 5

// formatResult готовит текст ответа пользователю
func formatResult(r *entity.DecodeResult) string {
	var sb strings.Builder

	sb.WriteString("📝 Результат распознавания\n\n")
	fmt.Fprintf(&sb, "🆔 Номер ученика: %s\n", fieldText(r.StudentID))
	fmt.Fprintf(&sb, "🔢 Код варианта: %s\n", fieldText(r.ExamCode))
	if r.Rotation != 0 {
		fmt.Fprintf(&sb, "🔄 Бланк повернут на %d°\n", r.Rotation)
	}

	if r.Answers == nil {
		sb.WriteString("\n❗ Ответы не распознаны")
	} else {
		sb.WriteString("\n✏️ Ответы:\n")
		questions := make([]int, 0, len(r.Answers))
		for q := range r.Answers {
			questions = append(questions, q)
		}
		sort.Ints(questions)

		for i, q := range questions {
			fmt.Fprintf(&sb, "%d. %s", q, r.Answers[q])
			if (i+1)%answersPerLine == 0 || i == len(questions)-1 {
				sb.WriteByte('\n')
			} else {
				sb.WriteString("   ")
			}
		}
	}

	if len(r.Ambiguous) > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Несколько отметок: %s", strings.Join(r.Ambiguous, ", "))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func fieldText(f *entity.DecodedField) string {
	if f == nil {
		return "не распознан"
	}
	return string(*f)
}
