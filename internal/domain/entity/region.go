package entity

import "image"

// RegionType тип области бланка
type RegionType int

const (
	AnswerBlock RegionType = iota // блок ответов
	CodeBlock                     // код варианта
	IDBlock                       // номер ученика
)

func (t RegionType) String() string {
	switch t {
	case AnswerBlock:
		return "answer"
	case CodeBlock:
		return "code"
	case IDBlock:
		return "id"
	}
	return "unknown"
}

// RegionTypeFromLabel переводит индекс класса модели областей в RegionType.
func RegionTypeFromLabel(label int) (RegionType, bool) {
	switch label {
	case 0:
		return AnswerBlock, true
	case 1:
		return CodeBlock, true
	case 2:
		return IDBlock, true
	}
	return 0, false
}

// Region область бланка вместе с вырезанным изображением.
// Живёт только в рамках одной гипотезы поворота.
type Region struct {
	Box  Box
	Type RegionType
	Crop image.Image
}
