package entity

// GridSpec размер логической сетки поля
type GridSpec struct {
	Rows int
	Cols int
}

var (
	IDGrid     = GridSpec{Rows: 10, Cols: 6} // номер ученика
	CodeGrid   = GridSpec{Rows: 10, Cols: 3} // код варианта
	AnswerGrid = GridSpec{Rows: 10, Cols: 4} // один блок из 10 вопросов
)

// Unmarked отмечает позицию без уверенно найденной отметки.
const Unmarked = '?'

// DecodedField строка фиксированной длины: цифра/буква или '?' на каждую позицию.
type DecodedField string
