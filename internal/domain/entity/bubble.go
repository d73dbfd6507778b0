package entity

// BubbleClass класс отметки, который выдаёт классификатор
type BubbleClass int

const (
	Filled   BubbleClass = iota // закрашенный кружок
	Unfilled                    // пустой кружок
)

func (c BubbleClass) String() string {
	switch c {
	case Filled:
		return "filled"
	case Unfilled:
		return "unfilled"
	}
	return "unknown"
}

// BubbleClassFromLabel переводит индекс класса модели в BubbleClass.
func BubbleClassFromLabel(label int) (BubbleClass, bool) {
	switch label {
	case 0:
		return Filled, true
	case 1:
		return Unfilled, true
	}
	return 0, false
}

// Bubble отметка внутри вырезанной области
type Bubble struct {
	Box   Box
	Class BubbleClass
}

// IsFilled сообщает, закрашена ли отметка
func (b Bubble) IsFilled() bool {
	return b.Class == Filled
}
